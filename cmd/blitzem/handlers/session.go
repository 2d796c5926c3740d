package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/imamik/blitzem/internal/config"
	"github.com/imamik/blitzem/internal/platform/cloudflare"
	"github.com/imamik/blitzem/internal/platform/hcloud"
	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/registry"
	"github.com/imamik/blitzem/internal/resource"
)

// Factory function variables - can be replaced in tests.
var (
	// loadConfig reads and validates the environment file.
	loadConfig = config.Load

	// newDriver creates the Hetzner Cloud driver.
	newDriver = func(token string, timeouts *config.Timeouts) (provider.Driver, error) {
		if token == "" {
			return nil, errors.New("HCLOUD_TOKEN environment variable is required")
		}
		return hcloud.NewRealClient(token, hcloud.WithTimeouts(timeouts)), nil
	}

	// newDNS creates the DNS service, or nil when no token is configured.
	newDNS = func(token string) provider.DNSService {
		if token == "" {
			return nil
		}
		return cloudflare.NewClient(token)
	}

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// session is everything one CLI invocation works with.
type session struct {
	cfg       *config.Config
	driver    provider.Driver
	ctx       *provisioning.Context
	telemetry *telemetry
}

func openSession(ctx context.Context, opts *Options) (*session, error) {
	level, err := opts.logLevel()
	if err != nil {
		return nil, err
	}
	format, err := provisioning.ParseLogFormat(opts.LogFormat)
	if err != nil {
		return nil, err
	}
	runOpts, err := opts.runOptions()
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	timeouts := config.LoadTimeouts()
	driver, err := newDriver(os.Getenv("HCLOUD_TOKEN"), timeouts)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	if _, err := resource.Register(reg, cfg); err != nil {
		return nil, err
	}

	tel, err := newTelemetry(opts, cfg.Environment)
	if err != nil {
		return nil, err
	}

	ctxOpts := []provisioning.ContextOption{
		provisioning.WithObserver(provisioning.NewLogObserver(stderr, format, level)),
		provisioning.WithTimeouts(timeouts),
		provisioning.WithOptions(runOpts),
	}
	if dns := newDNS(os.Getenv("CLOUDFLARE_API_TOKEN")); dns != nil {
		ctxOpts = append(ctxOpts, provisioning.WithDNS(dns))
	}

	return &session{
		cfg:       cfg,
		driver:    driver,
		ctx:       provisioning.NewContext(ctx, cfg.Environment, driver, reg, ctxOpts...),
		telemetry: tel,
	}, nil
}

// close flushes telemetry. runErr takes precedence over flush errors.
func (s *session) close(runErr error) error {
	flushErr := s.telemetry.flush(context.WithoutCancel(s.ctx))
	if runErr != nil {
		if flushErr != nil {
			s.ctx.Observer.Printf("Warning: %v", flushErr)
		}
		return runErr
	}
	if flushErr != nil {
		return fmt.Errorf("run succeeded but %w", flushErr)
	}
	return nil
}
