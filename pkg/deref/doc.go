// Package deref resolves references to named data structures within an
// element tree.
//
// Dereferencing turns `{element: "Person"}` into the structure Person
// describes, e.g. `{element: "object", content: [...]}`, and records the
// original name in meta.ref. Resolution is transitive: structures that
// reference other structures are expanded as well.
//
// Cycles among structures are detected. By default a cycle is an error; see
// [WithCyclePolicy] for keeping the recursive reference instead.
package deref
