package labels

import (
	"maps"
	"slices"
	"strings"
)

// Label keys.
const (
	KeyEnvironment = "blitzem.io/environment"
	KeyManagedBy   = "blitzem.io/managed-by"
	KeyResource    = "blitzem.io/resource"
	KeyKind        = "blitzem.io/kind"

	// TagKeyPrefix prefixes the key of every tag label.
	TagKeyPrefix = "tag.blitzem.io/"
)

// ManagedByBlitzem is the value of KeyManagedBy on every resource blitzem creates.
const ManagedByBlitzem = "blitzem"

// LabelBuilder provides a fluent interface for constructing resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder with the environment and managed-by labels set.
func NewLabelBuilder(environment string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyEnvironment: environment,
			KeyManagedBy:   ManagedByBlitzem,
		},
	}
}

// WithResource sets the declared resource name.
func (lb *LabelBuilder) WithResource(name string) *LabelBuilder {
	lb.labels[KeyResource] = name
	return lb
}

// WithKind sets the resource kind, e.g. "node" or "load-balancer".
func (lb *LabelBuilder) WithKind(kind string) *LabelBuilder {
	lb.labels[KeyKind] = kind
	return lb
}

// WithTags adds one label per tag. Duplicate tags collapse into one label.
func (lb *LabelBuilder) WithTags(tags ...string) *LabelBuilder {
	for _, tag := range tags {
		lb.labels[TagKeyPrefix+tag] = "true"
	}
	return lb
}

// Merge adds user-supplied labels. Existing keys are not overwritten, so the
// labels blitzem relies on for lookups stay intact.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		if _, ok := lb.labels[k]; !ok {
			lb.labels[k] = v
		}
	}
	return lb
}

// Build returns a copy of the constructed labels.
func (lb *LabelBuilder) Build() map[string]string {
	return maps.Clone(lb.labels)
}

// SelectorForEnvironment returns the labels selecting everything blitzem
// manages in an environment.
func SelectorForEnvironment(environment string) map[string]string {
	return map[string]string{
		KeyEnvironment: environment,
		KeyManagedBy:   ManagedByBlitzem,
	}
}

// Selector renders labels as a Hetzner Cloud label selector ("k1=v1,k2=v2").
// Keys are sorted so the result is stable.
func Selector(labels map[string]string) string {
	keys := slices.Sorted(maps.Keys(labels))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+labels[k])
	}
	return strings.Join(parts, ",")
}

// Tags extracts the tags encoded in a label set, sorted.
func Tags(labels map[string]string) []string {
	var tags []string
	for k := range labels {
		if tag, ok := strings.CutPrefix(k, TagKeyPrefix); ok && tag != "" {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}
