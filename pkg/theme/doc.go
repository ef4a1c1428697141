// Package theme defines the styling handed to renderers of normalized
// element trees.
//
// There is no package-level theme. [Default] returns a fresh value, and
// [Merge] combines it with a partial override without modifying either.
package theme
