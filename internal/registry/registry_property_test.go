package registry

import (
	"slices"
	"testing"

	"pgregory.net/rapid"
)

var tagPool = []string{"web", "db", "api", "cache", "edge"}

func drawRegistry(t *rapid.T) (*Registry, []Item) {
	r := New()
	count := rapid.IntRange(0, 12).Draw(t, "count")
	items := make([]Item, 0, count)
	for i := range count {
		name := rapid.StringMatching(`[a-z]{1,4}-[0-9]`).Draw(t, "name")
		tags := rapid.SliceOfN(rapid.SampledFrom(tagPool), 0, 3).Draw(t, "tags")
		var item Item
		if rapid.Bool().Draw(t, "balancer") {
			item = &testBalancer{name: name, tags: tags, subject: rapid.SampledFrom(tagPool).Draw(t, "subject")}
		} else {
			item = &testNode{name: name, tags: tags}
		}
		if err := r.Register(item); err != nil {
			t.Fatalf("register item %d: %v", i, err)
		}
		items = append(items, item)
	}
	return r, items
}

func TestProperty_FindMatchingIncludesByNameAndTag(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r, items := drawRegistry(t)
		for _, item := range items {
			if !slices.Contains(FindMatching[Item](r, item.Name()), item) {
				t.Fatalf("%s not found by its name", item.Name())
			}
			for _, tag := range item.Tags() {
				if !slices.Contains(FindMatching[Item](r, tag), item) {
					t.Fatalf("%s not found by tag %q", item.Name(), tag)
				}
			}
		}
	})
}

func TestProperty_WildcardReturnsCapabilityInOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r, items := drawRegistry(t)

		var want []*testNode
		for _, item := range items {
			if n, ok := item.(*testNode); ok {
				want = append(want, n)
			}
		}

		got := FindMatching[*testNode](r, "")
		if !slices.Equal(got, want) {
			t.Fatalf("wildcard lookup: got %v, want %v", names(got), names(want))
		}
	})
}

func TestProperty_FindSubscribersExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r, items := drawRegistry(t)
		subject := rapid.SampledFrom(append(tagPool, "unused")).Draw(t, "subject")

		var want []balancer
		for _, item := range items {
			if b, ok := item.(*testBalancer); ok && b.subject == subject {
				want = append(want, b)
			}
		}

		got := FindSubscribers[balancer](r, subject)
		if !slices.Equal(got, want) {
			t.Fatalf("subscribers of %q: got %v, want %v", subject, names(got), names(want))
		}
	})
}
