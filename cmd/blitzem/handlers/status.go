package handlers

import (
	"context"

	"github.com/imamik/blitzem/internal/command"
)

// Status handles the status command.
func Status(ctx context.Context, opts *Options, nameOrTag string) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}

	status := &command.Status{}
	if err := command.NewRunner(s.driver).Run(s.ctx, status, nameOrTag); err != nil {
		return s.close(err)
	}
	renderStatus(stdout, s.cfg.Environment, status.Entries)
	return s.close(nil)
}

// List handles the list command.
func List(ctx context.Context, opts *Options) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}

	list := &command.List{}
	if err := command.NewRunner(s.driver).Run(s.ctx, list, ""); err != nil {
		return s.close(err)
	}
	renderList(stdout, s.cfg.Environment, list)
	return s.close(nil)
}
