package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/MacroPower/attrkit/pkg/element"
	"github.com/MacroPower/attrkit/pkg/source"
)

var (
	// ErrMissingID indicates a structure without a meta id.
	ErrMissingID = errors.New("structure has no id")

	// ErrDuplicateID indicates two structures sharing a meta id.
	ErrDuplicateID = errors.New("duplicate structure id")
)

// Tags of API Elements containers that hold data structures.
const (
	tagDataStructure = "dataStructure"
	tagCategory      = "category"
	tagParseResult   = "parseResult"
)

// Catalog maps structure names to their defining elements.
type Catalog map[string]*element.Element

// New builds a [Catalog] from structures, keyed by meta id. Structures are
// cloned. API Elements containers (parseResult, category, dataStructure) are
// unwrapped. All problems are reported together.
func New(structures ...*element.Element) (Catalog, error) {
	c := Catalog{}

	var merr error

	for _, s := range flatten(structures) {
		id := s.Meta.ID
		if id == "" {
			merr = multierror.Append(merr, fmt.Errorf("%w: element %q", ErrMissingID, s.Tag))

			continue
		}

		if _, ok := c[id]; ok {
			merr = multierror.Append(merr, fmt.Errorf("%w: %q", ErrDuplicateID, id))

			continue
		}

		c[id] = s.Clone()
	}

	if merr != nil {
		return nil, merr //nolint:wrapcheck // Contains wrapped errors.
	}

	return c, nil
}

func flatten(in []*element.Element) []*element.Element {
	out := make([]*element.Element, 0, len(in))

	for _, e := range in {
		if e == nil {
			continue
		}

		switch e.Tag {
		case tagParseResult, tagCategory:
			out = append(out, flatten(e.Items())...)

		case tagDataStructure:
			switch c := e.Content.(type) {
			case *element.Wrapper:
				if c != nil {
					out = append(out, flatten([]*element.Element{c.Value})...)
				}
			case element.Sequence:
				out = append(out, flatten(c)...)
			}

		default:
			out = append(out, e)
		}
	}

	return out
}

// Lookup returns the structure named name.
func (c Catalog) Lookup(name string) (*element.Element, bool) {
	e, ok := c[name]

	return e, ok
}

// Names returns the structure names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Load reads structures from the given files concurrently and builds a
// [Catalog] from all of them. Each file holds one element or a list of
// elements. Read errors from every file are reported together.
func Load(ctx context.Context, paths ...string) (Catalog, error) {
	results := make([][]*element.Element, len(paths))
	errs := make([]error, len(paths))

	g, gCtx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			slog.Debug("loading structures", slog.String("path", path))

			data, err := source.ReadFile(path)
			if err != nil {
				errs[i] = err

				return nil
			}

			structures, err := source.DecodeElements(data)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)

				return nil
			}

			results[i] = structures

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	var merr error

	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if merr != nil {
		return nil, merr //nolint:wrapcheck // Contains wrapped errors.
	}

	return New(slices.Concat(results...)...)
}
