// Package labels provides consistent labeling for Hetzner Cloud resources.
//
// All labels use the blitzem.io domain prefix. A builder assembles the label
// set of a resource from its environment, its declared name and its tags, and
// selector helpers turn such sets back into provider label selectors.
package labels
