package element

// WalkFunc is called for each visited element with its depth below the root.
// Returning false skips the element's children.
type WalkFunc func(e *Element, depth int) bool

// Walk visits root and its descendants depth-first in document order,
// including wrapper keys and values.
func Walk(root *Element, fn WalkFunc) {
	walk(root, 0, fn)
}

func walk(e *Element, depth int, fn WalkFunc) {
	if e == nil || !fn(e, depth) {
		return
	}

	switch c := e.Content.(type) {
	case Sequence:
		for _, item := range c {
			walk(item, depth+1, fn)
		}

	case *Wrapper:
		if c != nil {
			walk(c.Key, depth+1, fn)
			walk(c.Value, depth+1, fn)
		}
	}
}

// Count returns the number of elements in the tree rooted at root.
func Count(root *Element) int {
	n := 0

	Walk(root, func(_ *Element, _ int) bool {
		n++
		return true
	})

	return n
}
