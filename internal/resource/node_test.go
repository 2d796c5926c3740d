package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/testutil"
	"github.com/imamik/blitzem/internal/util/labels"
)

func webNode() *Node {
	return NewNode(NodeSpec{
		Name:       "web-1",
		Tags:       []string{"web", "frontend"},
		ServerType: "cx22",
		Image:      "ubuntu-24.04",
		Location:   "nbg1",
		SSHKeys:    []string{"deploy"},
		Labels:     map[string]string{"team": "platform"},
	})
}

func TestNode_Identity(t *testing.T) {
	t.Parallel()
	n := NewNode(NodeSpec{Name: "api-1", Tags: []string{"api"}, DependsOn: []string{"db"}})

	assert.Equal(t, "api-1", n.Name())
	assert.Equal(t, []string{"api"}, n.Tags())
	assert.Equal(t, KindNode, n.Kind())
	assert.Equal(t, []string{"db"}, n.Dependencies())
	assert.Equal(t, []string{"db"}, n.NotificationSubjects())
}

func TestNewNode_CopiesSpec(t *testing.T) {
	t.Parallel()
	tags := []string{"web"}
	n := NewNode(NodeSpec{Name: "web-1", Tags: tags})
	tags[0] = "mutated"

	assert.Equal(t, []string{"web"}, n.Tags())
}

func TestNode_UpCreatesInstance(t *testing.T) {
	t.Parallel()
	fx := testutil.NewFixture(t)
	ctx := fx.Context()

	require.NoError(t, webNode().Up(ctx, nil))

	require.Len(t, fx.Driver.CreatedInstances, 1)
	opts := fx.Driver.CreatedInstances[0]
	assert.Equal(t, "web-1", opts.Name)
	assert.Equal(t, "cx22", opts.ServerType)
	assert.Equal(t, "ubuntu-24.04", opts.Image)
	assert.Equal(t, "nbg1", opts.Location)
	assert.Equal(t, []string{"deploy"}, opts.SSHKeys)
	assert.Equal(t, map[string]string{
		labels.KeyEnvironment:            "test",
		labels.KeyManagedBy:              labels.ManagedByBlitzem,
		labels.KeyResource:               "web-1",
		labels.KeyKind:                   "node",
		labels.TagKeyPrefix + "web":      "true",
		labels.TagKeyPrefix + "frontend": "true",
		"team":                           "platform",
	}, opts.Labels)

	created := fx.Observer.EventsOfType(provisioning.EventResourceCreated)
	require.Len(t, created, 1)
	assert.Equal(t, "web-1", created[0].Resource)
}

func TestNode_UpIsIdempotent(t *testing.T) {
	t.Parallel()
	fx := testutil.NewFixture(t)
	ctx := fx.Context()
	n := webNode()

	require.NoError(t, n.Up(ctx, nil))
	require.NoError(t, n.Up(ctx, nil))

	assert.Len(t, fx.Driver.CreatedInstances, 1)
	assert.Len(t, fx.Driver.Instances(), 1)
	assert.Len(t, fx.Observer.EventsOfType(provisioning.EventResourceExists), 1)
}

func TestNode_UpCreateAlways(t *testing.T) {
	t.Parallel()
	fx := testutil.NewFixture(t)
	ctx := fx.Context(provisioning.WithOptions(provisioning.Options{CreatePolicy: provisioning.CreateAlways}))
	fx.Driver.SeedInstance("web-1", nil)

	require.NoError(t, webNode().Up(ctx, nil))

	assert.Len(t, fx.Driver.CreatedInstances, 1)
	assert.Len(t, fx.Driver.Instances(), 2)
}

func TestNode_UpProviderError(t *testing.T) {
	t.Parallel()
	fx := testutil.NewFixture(t)
	fx.Driver.CreateInstanceErr = errors.New("quota exceeded")

	err := webNode().Up(fx.Context(), nil)
	require.ErrorIs(t, err, fx.Driver.CreateInstanceErr)
	assert.Contains(t, err.Error(), "create instance web-1")
}

func TestNode_IsUp(t *testing.T) {
	t.Parallel()
	fx := testutil.NewFixture(t)
	ctx := fx.Context()
	n := webNode()

	up, err := n.IsUp(ctx)
	require.NoError(t, err)
	assert.False(t, up)

	fx.Driver.SeedInstance("web-1", nil)
	up, err = n.IsUp(ctx)
	require.NoError(t, err)
	assert.True(t, up)
}

func TestNode_Down(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		matches int
	}{
		{"no matches", 0},
		{"one match", 1},
		{"duplicates", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fx := testutil.NewFixture(t)
			fx.Driver.SeedInstance("other", nil)
			for range tt.matches {
				fx.Driver.SeedInstance("web-1", nil)
			}

			require.NoError(t, webNode().Down(fx.Context(), nil))

			assert.Len(t, fx.Driver.DestroyedInstances, tt.matches)
			assert.Len(t, fx.Driver.Instances(), 1)
			assert.Len(t, fx.Observer.EventsOfType(provisioning.EventResourceDeleted), tt.matches)
			noops := fx.Observer.EventsOfType(provisioning.EventResourceNoop)
			if tt.matches == 0 {
				assert.Len(t, noops, 1)
			} else {
				assert.Empty(t, noops)
			}
		})
	}
}

func TestNode_DownAttemptsEveryMatch(t *testing.T) {
	t.Parallel()
	fx := testutil.NewFixture(t)
	first := fx.Driver.SeedInstance("web-1", nil)
	second := fx.Driver.SeedInstance("web-1", nil)
	busy := errors.New("server is locked")
	fx.Driver.DestroyErrs = map[string]error{first.ID: busy}

	err := webNode().Down(fx.Context(), nil)

	require.ErrorIs(t, err, busy)
	assert.Contains(t, err.Error(), first.ID)
	assert.Equal(t, []string{first.ID, second.ID}, fx.Driver.DestroyedInstances)
	require.Len(t, fx.Driver.Instances(), 1)
	assert.Equal(t, first.ID, fx.Driver.Instances()[0].ID)
}

func TestNode_Notifications(t *testing.T) {
	t.Parallel()
	fx := testutil.NewFixture(t)
	ctx := fx.Context()
	api := NewNode(NodeSpec{Name: "api-1", DependsOn: []string{"db"}})
	db := NewNode(NodeSpec{Name: "db-1", Tags: []string{"db"}})

	api.NotifyIsUp(ctx, db)
	api.NotifyIsGoingDown(ctx, db)

	events := fx.Observer.EventsOfType(provisioning.EventNotification)
	require.Len(t, events, 2)
	assert.Equal(t, "api-1", events[0].Resource)
	assert.Equal(t, "up", events[0].Fields["transition"])
	assert.Equal(t, "going down", events[1].Fields["transition"])
}
