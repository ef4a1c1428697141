// Package outline prints element trees as indented text outlines, styled by a
// [github.com/MacroPower/attrkit/pkg/theme.Theme].
package outline
