package deref

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/MacroPower/attrkit/pkg/catalog"
	"github.com/MacroPower/attrkit/pkg/element"
)

// DefaultMaxDepth bounds the nesting depth of a resolved tree.
const DefaultMaxDepth = 512

var (
	// ErrUnresolvedReference indicates a tag that names no known structure.
	// It is only returned when [WithStrict] is set.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrCyclicReference indicates structures that reference each other.
	ErrCyclicReference = errors.New("cyclic reference")

	// ErrMaxDepthExceeded indicates a tree nested deeper than allowed.
	ErrMaxDepthExceeded = errors.New("maximum depth exceeded")
)

// CyclePolicy decides what happens when a structure references itself,
// directly or through other structures.
type CyclePolicy int

const (
	// CycleError fails resolution with [ErrCyclicReference].
	CycleError CyclePolicy = iota
	// CycleKeepReference leaves the recursive occurrence unexpanded, with its
	// tag still naming the structure.
	CycleKeepReference
)

type resolver struct {
	catalog     catalog.Catalog
	reported    map[string]bool
	stack       []string
	maxDepth    int
	cyclePolicy CyclePolicy
	strict      bool
	inheritance bool
	mixins      bool
}

// Option configures [Resolve].
type Option func(*resolver)

// WithStrict makes references to unknown structures an error.
func WithStrict() Option {
	return func(r *resolver) {
		r.strict = true
	}
}

// WithMaxDepth sets the maximum nesting depth. Values below one are ignored.
func WithMaxDepth(n int) Option {
	return func(r *resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithCyclePolicy sets how cycles among structures are handled.
func WithCyclePolicy(p CyclePolicy) Option {
	return func(r *resolver) {
		r.cyclePolicy = p
	}
}

// WithInheritance keeps a referencing element's own members. They are
// appended after the referenced structure's members, which are classified
// as inherited.
func WithInheritance() Option {
	return func(r *resolver) {
		r.inheritance = true
	}
}

// WithMixins expands `{element: "ref", content: "Name"}` members into the
// members of the named structure, classified as included.
func WithMixins() Option {
	return func(r *resolver) {
		r.mixins = true
	}
}

// Resolve returns a copy of root in which every element whose tag names a
// structure in cat has been replaced by that structure's tag and content,
// with meta.ref set to the name. Elements keep their own id, description,
// classes and attributes. Tags naming no structure are left as they are.
//
// Neither root nor cat is modified. A nil root resolves to nil.
func Resolve(root *element.Element, cat catalog.Catalog, opts ...Option) (*element.Element, error) {
	r := &resolver{
		catalog:  cat,
		reported: map[string]bool{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}

	out := root.Clone()
	if err := r.resolveNode(out, 0); err != nil {
		return nil, err
	}

	return out, nil
}

// resolveNode resolves e in place. e must be owned by the resolver.
func (r *resolver) resolveNode(e *element.Element, depth int) error {
	if e == nil {
		return nil
	}

	if depth > r.maxDepth {
		return fmt.Errorf("%w: %d at %q", ErrMaxDepthExceeded, r.maxDepth, e.Tag)
	}

	_, isRef := r.catalog[e.Tag]

	// Own content first: substituted content comes from expand, which has
	// already resolved it. Without inheritance a reference's own content is
	// replaced, so it is not resolved at all.
	if !isRef || r.inheritance {
		if err := r.resolveContent(e, depth); err != nil {
			return err
		}
	}

	if !isRef {
		return r.unresolved(e.Tag)
	}

	return r.substitute(e, depth)
}

func (r *resolver) resolveContent(e *element.Element, depth int) error {
	switch c := e.Content.(type) {
	case element.Sequence:
		items := make(element.Sequence, 0, len(c))

		for _, item := range c {
			if name, ok := r.mixinName(item); ok {
				members, err := r.mixin(name, item, depth+1)
				if err != nil {
					return err
				}

				items = append(items, members...)

				continue
			}

			if err := r.resolveNode(item, depth+1); err != nil {
				return err
			}

			items = append(items, item)
		}

		e.Content = items

	case *element.Wrapper:
		if c == nil {
			return nil
		}

		if err := r.resolveNode(c.Key, depth+1); err != nil {
			return err
		}

		if err := r.resolveNode(c.Value, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (r *resolver) substitute(e *element.Element, depth int) error {
	name := e.Tag

	base, err := r.expand(name, depth)
	if err != nil {
		return err
	}

	if base == nil {
		// Recursive occurrence kept by CycleKeepReference.
		return nil
	}

	own, hasOwn := e.Content.(element.Sequence)
	inherited, baseIsSeq := base.Content.(element.Sequence)

	e.Tag = base.Tag
	e.Meta.Ref = name
	e.Content = base.Content

	if r.inheritance && hasOwn && len(own) > 0 && baseIsSeq {
		merged := make(element.Sequence, 0, len(inherited)+len(own))
		for _, item := range inherited {
			merged = append(merged, item.WithClasses(element.ClassNameInherited))
		}

		e.Content = append(merged, own...)
	}

	slog.Debug("resolved reference",
		slog.String("ref", name),
		slog.String("element", e.Tag),
		slog.String("id", e.Meta.ID),
	)

	return nil
}

// expand returns a resolved copy of the structure called name. It returns
// nil, and no error, for a recursive occurrence under CycleKeepReference.
func (r *resolver) expand(name string, depth int) (*element.Element, error) {
	if slices.Contains(r.stack, name) {
		chain := strings.Join(append(slices.Clone(r.stack), name), " -> ")

		if r.cyclePolicy == CycleKeepReference {
			slog.Debug("keeping recursive reference", slog.String("chain", chain))

			return nil, nil
		}

		return nil, fmt.Errorf("%w: %s", ErrCyclicReference, chain)
	}

	r.stack = append(r.stack, name)
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]
	}()

	entry := r.catalog[name].Clone()
	if err := r.resolveNode(entry, depth+1); err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *resolver) mixinName(e *element.Element) (string, bool) {
	if !r.mixins || e == nil || e.Tag != element.TagRef {
		return "", false
	}

	s, ok := e.Content.(element.Scalar)
	if !ok {
		return "", false
	}

	name, ok := s.Value.(string)
	if !ok {
		return "", false
	}

	_, known := r.catalog[name]

	return name, known
}

// mixin returns the included members of the structure called name, or the
// ref element itself when the structure has no members to include.
func (r *resolver) mixin(name string, ref *element.Element, depth int) (element.Sequence, error) {
	base, err := r.expand(name, depth)
	if err != nil {
		return nil, err
	}

	if base == nil {
		return element.Sequence{ref}, nil
	}

	members, ok := base.Content.(element.Sequence)
	if !ok {
		return element.Sequence{ref}, nil
	}

	out := make(element.Sequence, 0, len(members))
	for _, m := range members {
		out = append(out, m.WithClasses(element.ClassNameIncluded))
	}

	slog.Debug("included members",
		slog.String("ref", name),
		slog.Int("count", len(out)),
	)

	return out, nil
}

func (r *resolver) unresolved(tag string) error {
	if tag == "" || element.IsPrimitiveTag(tag) {
		return nil
	}

	if r.strict {
		return fmt.Errorf("%w: %q", ErrUnresolvedReference, tag)
	}

	if !r.reported[tag] {
		r.reported[tag] = true

		slog.Debug("leaving unresolved reference", slog.String("ref", tag))
	}

	return nil
}
