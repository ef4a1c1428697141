package normalize

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/MacroPower/attrkit/pkg/catalog"
	"github.com/MacroPower/attrkit/pkg/deref"
	"github.com/MacroPower/attrkit/pkg/element"
	"github.com/MacroPower/attrkit/pkg/theme"
	"github.com/MacroPower/attrkit/pkg/tracing"
	"github.com/MacroPower/attrkit/pkg/visibility"
)

// ErrMissingRootElement indicates that no element was supplied. Callers
// should render nothing.
var ErrMissingRootElement = errors.New("missing root element")

// Options configures [Normalize].
type Options struct {
	// ShowInherited keeps inherited members. Nil means true.
	ShowInherited *bool
	// ShowIncluded keeps included members. Nil means true.
	ShowIncluded *bool
	// Theme is merged over [theme.Default]. Nil means the default theme.
	Theme *theme.Theme
	// Resolve holds extra options for reference resolution.
	Resolve []deref.Option
	// AssignIDs gives an id to every node that has none, or that shares
	// its id with an earlier node (e.g. a structure referenced twice). Ids
	// are derived from the node's position in the dereferenced tree, so the
	// same input always gets the same ids.
	AssignIDs bool
	// Tracer times each stage. Nil means debug log records.
	Tracer tracing.Tracer
}

// Result is the output of a normalization pass.
type Result struct {
	// Element is the resolved and filtered tree to render.
	Element *element.Element
	// Dereferenced is the resolved tree before filtering.
	Dereferenced *element.Element
	// Theme is the merged theme for the renderer.
	Theme         theme.Theme
	ShowInherited bool
	ShowIncluded  bool
}

// Normalize resolves root against cat and filters the result. Neither root
// nor cat is modified.
//
// A nil root is reported with [ErrMissingRootElement] and a nil result.
func Normalize(root *element.Element, cat catalog.Catalog, opts Options) (*Result, error) {
	if root == nil {
		slog.Error("no element to normalize: please provide the root element of the data structure")

		return nil, ErrMissingRootElement
	}

	showInherited := valueOr(opts.ShowInherited, true)
	showIncluded := valueOr(opts.ShowIncluded, true)

	th, err := theme.Resolve(opts.Theme)
	if err != nil {
		return nil, fmt.Errorf("resolve theme: %w", err)
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.NewLoggingTracer(nil)
	}

	span := tracer.StartSpan("dereference")

	dereferenced, err := deref.Resolve(root, cat, opts.Resolve...)
	if err != nil {
		span.SetBaggageItem("err", err.Error())
		span.Finish()

		return nil, fmt.Errorf("dereference: %w", err)
	}

	if opts.AssignIDs {
		assignIDs(dereferenced)
	}

	total := element.Count(dereferenced)
	span.SetBaggageItem("nodes", total)
	span.Finish()

	span = tracer.StartSpan("filter")

	filtered := visibility.Filter(dereferenced, visibility.Options{
		RemoveInherited: !showInherited,
		RemoveIncluded:  !showIncluded,
	})

	span.SetBaggageItem("removed", total-element.Count(filtered))
	span.Finish()

	return &Result{
		Element:       filtered,
		Dereferenced:  dereferenced,
		Theme:         th,
		ShowInherited: showInherited,
		ShowIncluded:  showIncluded,
	}, nil
}

// Document bundles a root element with the structures it references and its
// rendering options.
type Document struct {
	Element        *element.Element   `json:"element"`
	ShowInherited  *bool              `json:"showInherited,omitempty"`
	ShowIncluded   *bool              `json:"showIncluded,omitempty"`
	Theme          *theme.Theme       `json:"theme,omitempty"`
	DataStructures []*element.Element `json:"dataStructures,omitempty"`
}

// NormalizeDocument builds a catalog from doc's data structures and
// normalizes doc's element with doc's options.
func NormalizeDocument(doc Document, opts ...deref.Option) (*Result, error) {
	cat, err := catalog.New(doc.DataStructures...)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	return Normalize(doc.Element, cat, Options{
		ShowInherited: doc.ShowInherited,
		ShowIncluded:  doc.ShowIncluded,
		Theme:         doc.Theme,
		Resolve:       opts,
	})
}

// idNamespace is the UUID namespace of assigned element ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/MacroPower/attrkit/element"))

func assignIDs(root *element.Element) {
	seen := map[string]bool{}

	var visit func(e *element.Element, path string)

	visit = func(e *element.Element, path string) {
		if e == nil {
			return
		}

		if e.Meta.ID == "" || seen[e.Meta.ID] {
			e.Meta.ID = uuid.NewSHA1(idNamespace, []byte(path)).String()
		}

		seen[e.Meta.ID] = true

		switch c := e.Content.(type) {
		case element.Sequence:
			for i, item := range c {
				visit(item, path+"/"+strconv.Itoa(i))
			}

		case *element.Wrapper:
			if c != nil {
				visit(c.Key, path+"/key")
				visit(c.Value, path+"/value")
			}
		}
	}

	visit(root, "")
}

func valueOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}

	return *b
}
