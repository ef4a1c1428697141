package visibility

import (
	"github.com/MacroPower/attrkit/pkg/element"
)

// Options selects which members [Filter] removes.
type Options struct {
	// RemoveInherited removes members classified as inherited.
	RemoveInherited bool
	// RemoveIncluded removes members classified as included.
	RemoveIncluded bool
}

// Active reports whether the options remove anything.
func (o Options) Active() bool {
	return o.RemoveInherited || o.RemoveIncluded
}

// Drops reports whether e is removed under o. Elements without a
// recognizable classification are never removed.
func (o Options) Drops(e *element.Element) bool {
	if o.RemoveInherited && element.IsInherited(e) {
		return true
	}

	return o.RemoveIncluded && element.IsIncluded(e)
}

// Filter returns a copy of tree without the members selected by opts. The
// root, and a value wrapped directly by the root, are never removed; their
// content is filtered. With no removal selected the copy is identical to
// tree. tree is not modified, and Filter is idempotent.
func Filter(tree *element.Element, opts Options) *element.Element {
	out := tree.Clone()
	if out == nil || !opts.Active() {
		return out
	}

	f := filter{opts: opts}

	if w := out.Wrapped(); w != nil {
		if w.Value != nil {
			f.pruneContent(w.Value)
		}

		return out
	}

	f.pruneContent(out)

	return out
}

type filter struct {
	opts Options
}

// keep filters e in place and reports whether e survives.
func (f filter) keep(e *element.Element) bool {
	if e == nil || f.opts.Drops(e) {
		return false
	}

	return f.pruneContent(e)
}

// pruneContent filters e's content in place. It reports false when e wraps a
// value that is removed, in which case e must be removed too.
func (f filter) pruneContent(e *element.Element) bool {
	switch c := e.Content.(type) {
	case element.Sequence:
		kept := make(element.Sequence, 0, len(c))

		for _, item := range c {
			if f.keep(item) {
				kept = append(kept, item)
			}
		}

		e.Content = kept

	case *element.Wrapper:
		if c == nil || c.Value == nil {
			return true
		}

		return f.keep(c.Value)
	}

	return true
}
