package handlers

import (
	"context"

	"github.com/imamik/blitzem/internal/command"
)

// Up handles the up command.
//
// It loads the environment file, registers the declared resources and brings
// those matching nameOrTag up. An empty nameOrTag selects everything.
func Up(ctx context.Context, opts *Options, nameOrTag string) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}

	up := command.NewUp(s.telemetry.orchestrator())
	err = command.NewRunner(s.driver).Run(s.ctx, up, nameOrTag)
	if up.Report != nil {
		renderReport(stdout, s.cfg.Environment, up.Report)
	}
	return s.close(err)
}

// Down handles the down command.
//
// Every selected resource is attempted; failures are reported together.
func Down(ctx context.Context, opts *Options, nameOrTag string) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}

	down := command.NewDown(s.telemetry.orchestrator())
	err = command.NewRunner(s.driver).Run(s.ctx, down, nameOrTag)
	if down.Report != nil {
		renderReport(stdout, s.cfg.Environment, down.Report)
	}
	return s.close(err)
}
