// Package registry catalogs the named and tagged items of an environment.
//
// Items are resolved by a user-supplied name or tag combined with a required
// capability, expressed as a type parameter:
//
//	nodes := registry.FindMatching[*resource.Node](reg, "web")
//	all := registry.FindMatching[resource.Resource](reg, "")
//
// An empty name-or-tag is a wildcard. Results always follow registration
// order, which is also the tie-break order for ambiguous matches.
//
// Subscribers are resolved the same way by their declared notification
// subjects. Subjects are plain strings, so dependent items never hold
// references to each other.
package registry
