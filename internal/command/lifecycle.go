package command

import (
	"github.com/imamik/blitzem/internal/lifecycle"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/resource"
)

// Up brings the selected resources up.
type Up struct {
	Orchestrator *lifecycle.Orchestrator

	// Report is set by Execute.
	Report *lifecycle.Report
}

var _ ResourceCommand = (*Up)(nil)

// NewUp creates an up command over orch.
func NewUp(orch *lifecycle.Orchestrator) *Up {
	return &Up{Orchestrator: orch}
}

func (c *Up) Name() string { return "up" }

// Execute runs the orchestrator upwards over targets.
func (c *Up) Execute(ctx *provisioning.Context, targets []resource.Resource) error {
	report, err := c.Orchestrator.Up(ctx, targets)
	c.Report = report
	return err
}

// Down brings the selected resources down.
type Down struct {
	Orchestrator *lifecycle.Orchestrator

	// Report is set by Execute.
	Report *lifecycle.Report
}

var _ ResourceCommand = (*Down)(nil)

// NewDown creates a down command over orch.
func NewDown(orch *lifecycle.Orchestrator) *Down {
	return &Down{Orchestrator: orch}
}

func (c *Down) Name() string { return "down" }

// Execute runs the orchestrator downwards over targets.
func (c *Down) Execute(ctx *provisioning.Context, targets []resource.Resource) error {
	report, err := c.Orchestrator.Down(ctx, targets)
	c.Report = report
	return err
}
