package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/registry"
	"github.com/imamik/blitzem/internal/resource"
	"github.com/imamik/blitzem/internal/util/async"
)

const (
	transitionUp        = "up"
	transitionGoingDown = "going-down"
)

// Orchestrator brings resources up and down through their lifecycle hooks.
type Orchestrator struct {
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics records lifecycle metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithTracer sets the tracer for lifecycle spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// New creates an orchestrator. Without WithTracer it uses the global
// OpenTelemetry tracer provider.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = defaultTracer()
	}
	return o
}

// hookStep binds a hook to the state a resource is in while it runs.
type hookStep struct {
	hook  Hook
	state State
	run   func(*provisioning.Context, []*resource.Node) error
}

// Up brings targets up in dependency order. It stops at the first hook
// failure and returns a *RunError. The report is returned in every case
// the targets could be scheduled.
func (o *Orchestrator) Up(ctx *provisioning.Context, targets []resource.Resource) (*Report, error) {
	levels, err := Schedule(targets, ctx.Options.Order)
	if err != nil {
		return nil, err
	}
	return o.run(ctx, DirectionUp, levels, targets)
}

// Down brings targets down, dependents first. Every target is attempted;
// hook failures are returned joined.
func (o *Orchestrator) Down(ctx *provisioning.Context, targets []resource.Resource) (*Report, error) {
	levels, err := Schedule(targets, ctx.Options.Order)
	if err != nil {
		return nil, err
	}
	return o.run(ctx, DirectionDown, reverse(levels), targets)
}

func (o *Orchestrator) run(ctx *provisioning.Context, direction Direction, levels [][]resource.Resource, targets []resource.Resource) (*Report, error) {
	report := newReport(direction, targets)
	phase := string(direction)
	start := time.Now()
	provisioning.LogPhaseStart(ctx.Observer, phase)

	var errs []error
	done := 0
	for _, level := range levels {
		err := o.runLevel(ctx, direction, level, report)
		done += len(level)
		ctx.Observer.Progress(phase, done, len(targets))
		if err == nil {
			continue
		}
		if direction == DirectionUp || isCancellation(err) {
			errs = append(errs, err)
			break
		}
		errs = append(errs, err)
	}

	for _, e := range report.Entries() {
		if e.State.Terminal() {
			o.metrics.recordResource(direction, e.State)
		}
	}

	if err := errors.Join(errs...); err != nil {
		provisioning.LogPhaseFailed(ctx.Observer, phase, err)
		return report, err
	}
	provisioning.LogPhaseComplete(ctx.Observer, phase, time.Since(start))
	return report, nil
}

func (o *Orchestrator) runLevel(ctx *provisioning.Context, direction Direction, level []resource.Resource, report *Report) error {
	if !ctx.Options.Parallel || len(level) < 2 {
		var errs []error
		for _, r := range level {
			if err := o.transition(ctx, direction, r, report); err != nil {
				if direction == DirectionUp || isCancellation(err) {
					return err
				}
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	tasks := make([]async.Task, len(level))
	for i, r := range level {
		tasks[i] = async.Task{
			Name: r.Name(),
			Func: func(c context.Context) error {
				return o.transition(ctx.WithContext(c), direction, r, report)
			},
		}
	}
	err := async.RunParallel(ctx, tasks, direction == DirectionDown)
	if err == nil || direction == DirectionDown {
		return err
	}
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr
	}
	return err
}

// transition moves one resource through the hooks of direction.
func (o *Orchestrator) transition(ctx *provisioning.Context, direction Direction, r resource.Resource, report *Report) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s cancelled before %s: %w", direction, r.Name(), err)
	}

	spanCtx, span := startResourceSpan(ctx, o.tracer, direction, r)
	hctx := ctx.WithContext(spanCtx)
	associated := associatedNodes(ctx.Registry, r)

	var steps []hookStep
	final := StateStable
	if direction == DirectionUp {
		steps = []hookStep{
			{HookPreUp, StatePreUp, r.PreUp},
			{HookUp, StateUp, r.Up},
			{HookPostUp, StatePostUp, r.PostUp},
		}
	} else {
		o.notify(hctx, r, transitionGoingDown)
		steps = []hookStep{
			{HookPreDown, StatePreDown, r.PreDown},
			{HookDown, StateDown, r.Down},
			{HookPostDown, StatePostDown, r.PostDown},
		}
		final = StateRemoved
	}

	for _, step := range steps {
		report.set(r, step.state)
		if err := o.runHook(hctx, r, step, associated); err != nil {
			report.fail(r, err)
			endSpan(span, err)
			if direction == DirectionUp {
				return &RunError{Direction: direction, Err: err}
			}
			return err
		}
	}
	report.set(r, final)
	endSpan(span, nil)

	if direction == DirectionUp {
		o.notify(hctx, r, transitionUp)
	}
	return nil
}

func (o *Orchestrator) runHook(ctx *provisioning.Context, r resource.Resource, step hookStep, associated []*resource.Node) *HookError {
	spanCtx, span := startHookSpan(ctx, o.tracer, step.hook, r)
	start := time.Now()
	err := step.run(ctx.WithContext(spanCtx), associated)
	o.metrics.recordHook(string(r.Kind()), string(step.hook), time.Since(start), err)
	endSpan(span, err)
	if err != nil {
		return &HookError{Resource: r.Name(), Kind: r.Kind(), Hook: step.hook, Err: err}
	}
	return nil
}

// notify delivers a transition of r to every subscriber interested in its
// name or tags, in registration order. r never notifies itself.
func (o *Orchestrator) notify(ctx *provisioning.Context, r resource.Resource, transition string) {
	subjects := append([]string{r.Name()}, r.Tags()...)
	for _, s := range registry.FindSubscribers[resource.Subscriber](ctx.Registry, subjects...) {
		if registry.Item(s) == registry.Item(r) {
			continue
		}
		if transition == transitionUp {
			s.NotifyIsUp(ctx, r)
		} else {
			s.NotifyIsGoingDown(ctx, r)
		}
		o.metrics.recordNotification(transition)
	}
}

// associatedNodes returns the registered nodes matching any dependency tag
// of r, without duplicates and without r itself. An empty tag matches nothing.
func associatedNodes(reg *registry.Registry, r resource.Resource) []*resource.Node {
	seen := make(map[*resource.Node]bool)
	var out []*resource.Node
	for _, dep := range r.Dependencies() {
		if dep == "" {
			continue
		}
		for _, n := range registry.FindMatching[*resource.Node](reg, dep) {
			if seen[n] || registry.Item(n) == registry.Item(r) {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
