package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidLocations contains all valid Hetzner Cloud datacenter locations.
// https://docs.hetzner.com/cloud/general/locations/
var ValidLocations = []string{"nbg1", "fsn1", "hel1", "ash", "hil", "sin"}

// tagPattern matches tags that can be carried as provider label keys.
var tagPattern = regexp.MustCompile(`^[a-zA-Z0-9]([-a-zA-Z0-9_.]{0,61}[a-zA-Z0-9])?$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("tag", func(fl validator.FieldLevel) bool {
			return tagPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("location", func(fl validator.FieldLevel) bool {
			return slices.Contains(ValidLocations, fl.Field().String())
		})
	})
	return validate
}

// Validate checks the configuration and returns every problem found.
// It expects defaults to be applied already.
func (c *Config) Validate() error {
	var errs []error

	if err := validatorInstance().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	errs = append(errs, c.validateUniqueNames()...)
	return errors.Join(errs...)
}

// validateUniqueNames rejects resources sharing a name. The registry itself
// tolerates duplicates, but a declared environment must not contain them.
func (c *Config) validateUniqueNames() []error {
	var errs []error
	seen := make(map[string]string)
	check := func(kind, name string) {
		if name == "" {
			return
		}
		if prev, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("%s %q: name already used by a %s", kind, name, prev))
			return
		}
		seen[name] = kind
	}
	for _, n := range c.Nodes {
		check("node", n.Name)
	}
	for _, lb := range c.LoadBalancers {
		check("load balancer", lb.Name)
	}
	return errs
}

func fieldError(fe validator.FieldError) error {
	// Namespace is "Config.nodes[0].name"; drop the root type name.
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "oneof":
		return fmt.Errorf("%s: %q must be one of [%s]", field, fe.Value(), fe.Param())
	case "location":
		return fmt.Errorf("%s: invalid location %q: must be one of %v", field, fe.Value(), ValidLocations)
	case "tag":
		return fmt.Errorf("%s: invalid tag %q", field, fe.Value())
	case "min", "max":
		return fmt.Errorf("%s: %v violates %s=%s", field, fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("%s: %v failed %q validation", field, fe.Value(), fe.Tag())
	}
}
