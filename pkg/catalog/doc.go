// Package catalog provides the lookup table of named data structures that
// element trees may reference by tag.
//
// A [Catalog] is keyed by each structure's meta id. It can be built from
// in-memory elements with [New], or from JSON/YAML files with [Load].
package catalog
