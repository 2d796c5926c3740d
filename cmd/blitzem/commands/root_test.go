package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	t.Parallel()
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "blitzem", cmd.Use)
	assert.Equal(t, "Provision tagged nodes and load balancers on Hetzner Cloud", cmd.Short)
}

func TestRoot_HasSubcommands(t *testing.T) {
	t.Parallel()
	cmd := Root()

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range []string{"up", "down", "status", "list", "version"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
	assert.Len(t, cmd.Commands(), 5)
}

func TestRoot_GlobalFlags(t *testing.T) {
	t.Parallel()
	cmd := Root()

	tests := []struct {
		flag     string
		defValue string
	}{
		{"config", "blitzem.yaml"},
		{"log-level", "info"},
		{"log-format", "auto"},
		{"trace", "false"},
		{"metrics-file", ""},
		{"allow-duplicates", "false"},
		{"order", "topological"},
		{"parallel", "false"},
	}

	for _, tt := range tests {
		f := cmd.PersistentFlags().Lookup(tt.flag)
		require.NotNil(t, f, "flag %s", tt.flag)
		assert.Equal(t, tt.defValue, f.DefValue, "flag %s", tt.flag)
	}
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
}

func TestSubcommands_Args(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"up without target", []string{"up"}, false},
		{"up with target", []string{"up", "web"}, false},
		{"up with two targets", []string{"up", "web", "db"}, true},
		{"down with two targets", []string{"down", "web", "db"}, true},
		{"status with target", []string{"status", "lb-1"}, false},
		{"list with target", []string{"list", "web"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := Root()
			sub, rest, err := root.Find(tt.args)
			require.NoError(t, err)

			err = sub.ValidateArgs(rest)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTarget(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", target(nil))
	assert.Equal(t, "web", target([]string{"web"}))
}
