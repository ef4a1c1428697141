// Package visibility removes inherited and included members from element
// trees.
//
// Members are removed at every depth, including inside wrapped values such
// as an object member's value. Removal of a wrapped value removes the member
// that wraps it, up to the nearest list of siblings; the remaining siblings
// keep their relative order.
package visibility
