package lifecycle

import (
	"fmt"
	"slices"
	"strings"

	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/resource"
)

// dependencies returns, for every target, the indexes of the other targets it
// depends on: the nodes whose name or tags match one of its dependency tags.
func dependencies(targets []resource.Resource) [][]int {
	deps := make([][]int, len(targets))
	for i, r := range targets {
		for _, dep := range r.Dependencies() {
			for j, t := range targets {
				if i == j || slices.Contains(deps[i], j) {
					continue
				}
				if _, ok := t.(*resource.Node); !ok {
					continue
				}
				if t.Name() == dep || slices.Contains(t.Tags(), dep) {
					deps[i] = append(deps[i], j)
				}
			}
		}
	}
	return deps
}

// Schedule groups targets into levels for bringing them up. Every resource
// comes after the targets it depends on.
//
// With OrderTopological each level holds the resources whose dependencies are
// all in earlier levels, in selection order. With OrderDeclared each level
// holds exactly one resource, in selection order, and an *OrderError is
// returned if that order starts a dependent first.
func Schedule(targets []resource.Resource, order provisioning.Order) ([][]resource.Resource, error) {
	deps := dependencies(targets)
	if order == provisioning.OrderDeclared {
		if err := validateDeclared(targets, deps); err != nil {
			return nil, err
		}
		levels := make([][]resource.Resource, len(targets))
		for i, r := range targets {
			levels[i] = []resource.Resource{r}
		}
		return levels, nil
	}
	return computeLevels(targets, deps)
}

// ValidateOrder checks that targets never list a dependent before its dependency.
func ValidateOrder(targets []resource.Resource) error {
	return validateDeclared(targets, dependencies(targets))
}

func validateDeclared(targets []resource.Resource, deps [][]int) error {
	for i, r := range targets {
		for _, j := range deps[i] {
			if j > i {
				return &OrderError{Dependent: r.Name(), Dependency: targets[j].Name()}
			}
		}
	}
	return nil
}

// computeLevels runs Kahn's algorithm level by level.
func computeLevels(targets []resource.Resource, deps [][]int) ([][]resource.Resource, error) {
	inDegree := make([]int, len(targets))
	dependents := make([][]int, len(targets))
	for i, ds := range deps {
		inDegree[i] = len(ds)
		for _, j := range ds {
			dependents[j] = append(dependents[j], i)
		}
	}

	var current []int
	for i := range targets {
		if inDegree[i] == 0 {
			current = append(current, i)
		}
	}

	var levels [][]resource.Resource
	processed := 0
	for len(current) > 0 {
		level := make([]resource.Resource, len(current))
		var next []int
		for k, i := range current {
			level[k] = targets[i]
			processed++
			for _, d := range dependents[i] {
				inDegree[d]--
				if inDegree[d] == 0 {
					next = append(next, d)
				}
			}
		}
		slices.Sort(next)
		levels = append(levels, level)
		current = next
	}

	if processed != len(targets) {
		var stuck []string
		for i, r := range targets {
			if inDegree[i] > 0 {
				stuck = append(stuck, r.Name())
			}
		}
		return nil, fmt.Errorf("%w between %s", ErrDependencyCycle, strings.Join(stuck, ", "))
	}
	return levels, nil
}

// reverse returns levels for bringing resources down: dependents first.
func reverse(levels [][]resource.Resource) [][]resource.Resource {
	out := make([][]resource.Resource, len(levels))
	for i, level := range levels {
		l := slices.Clone(level)
		slices.Reverse(l)
		out[len(levels)-1-i] = l
	}
	return out
}
