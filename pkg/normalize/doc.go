// Package normalize prepares element trees for rendering.
//
// [Normalize] copies the caller's tree, resolves references against a
// catalog of named structures (see [github.com/MacroPower/attrkit/pkg/deref]),
// and then removes inherited and included members according to the
// visibility options (see [github.com/MacroPower/attrkit/pkg/visibility]).
// Each call works on its own copies, so concurrent calls never interfere and
// caller-owned trees are never modified.
package normalize
