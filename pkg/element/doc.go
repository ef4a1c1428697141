// Package element defines the recursive Element tree used to describe MSON
// data structures (objects, arrays, enums, members and their values).
//
// An [Element] carries a tag naming its kind, a [Meta] block, passthrough
// [Attributes], and a [Content] value. Content is a closed union: absent
// (nil), a [Sequence] of sibling elements, a [Scalar] literal, or a
// [*Wrapper] holding a single nested key/value payload. Code operating on
// trees should match over the variant with a type switch.
//
// The JSON codec accepts both the plain form of meta fields used by this
// module and the refracted form emitted by API Elements parsers, so trees
// produced by external tools can be loaded directly.
package element
