package visibility_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/attrkit/pkg/element"
	"github.com/MacroPower/attrkit/pkg/visibility"
)

var (
	removeInherited = visibility.Options{RemoveInherited: true}
	removeIncluded  = visibility.Options{RemoveIncluded: true}
	removeBoth      = visibility.Options{RemoveInherited: true, RemoveIncluded: true}
)

func member(id string, classes ...string) *element.Element {
	return element.Member(id, element.New(element.TagString, nil)).WithID(id).WithClasses(classes...)
}

func ids(seq element.Sequence) []string {
	out := make([]string, 0, len(seq))
	for _, e := range seq {
		out = append(out, e.Meta.ID)
	}

	return out
}

func TestFilter_InheritedRemoval(t *testing.T) {
	t.Parallel()

	tree := element.New(element.TagObject, element.Sequence{
		member("a"),
		member("b", element.ClassNameInherited),
	})

	got := visibility.Filter(tree, removeInherited)

	want := element.New(element.TagObject, element.Sequence{member("a")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
	}

	// The input is untouched.
	assert.Len(t, tree.Items(), 2)
}

func TestFilter_NestedRemovalInsideWrappedValue(t *testing.T) {
	t.Parallel()

	value := element.New(element.TagObject, element.Sequence{
		member("x"),
		member("y", element.ClassNameIncluded),
	})
	tree := element.New(element.TagObject, element.Sequence{
		element.Member("m", value).WithID("m"),
	})

	got := visibility.Filter(tree, removeIncluded)

	require.Len(t, got.Items(), 1)
	m := got.Items()[0]
	assert.Equal(t, "m", m.Meta.ID)
	assert.Equal(t, []string{"x"}, ids(m.Wrapped().Value.Items()))
}

func TestFilter_WrappedValueClassificationDropsMember(t *testing.T) {
	t.Parallel()

	inheritedValue := element.New(element.TagObject, element.Sequence{}).WithClasses(element.ClassNameInherited)
	tree := element.New(element.TagObject, element.Sequence{
		member("a"),
		element.Member("b", inheritedValue).WithID("b"),
		member("c"),
	})

	assert.Equal(t, []string{"a", "c"}, ids(visibility.Filter(tree, removeInherited).Items()))
	assert.Equal(t, []string{"a", "b", "c"}, ids(visibility.Filter(tree, removeIncluded).Items()))
}

func TestFilter_Rules(t *testing.T) {
	t.Parallel()

	tree := element.New(element.TagObject, element.Sequence{
		member("plain"),
		member("inh", element.ClassNameInherited),
		member("inc", element.ClassNameIncluded),
		member("both", element.ClassNameInherited, element.ClassNameIncluded),
		member("other", "fixed"),
	})

	tcs := map[string]struct {
		opts visibility.Options
		want []string
	}{
		"none":      {opts: visibility.Options{}, want: []string{"plain", "inh", "inc", "both", "other"}},
		"inherited": {opts: removeInherited, want: []string{"plain", "inc", "other"}},
		"included":  {opts: removeIncluded, want: []string{"plain", "inh", "other"}},
		"both":      {opts: removeBoth, want: []string{"plain", "other"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, ids(visibility.Filter(tree, tc.opts).Items()))
		})
	}
}

func TestFilter_OrderPreservation(t *testing.T) {
	t.Parallel()

	tree := element.New(element.TagArray, element.Sequence{
		member("a"),
		member("b", element.ClassNameIncluded),
		member("c"),
	})

	assert.Equal(t, []string{"a", "c"}, ids(visibility.Filter(tree, removeIncluded).Items()))
}

func TestFilter_NonSequenceContent(t *testing.T) {
	t.Parallel()

	tcs := map[string]*element.Element{
		"absent": element.New(element.TagObject, nil),
		"scalar": element.New(element.TagString, element.Scalar{Value: "x"}).
			WithClasses(element.ClassNameInherited),
	}

	for name, tree := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tree, visibility.Filter(tree, removeBoth))
		})
	}
}

func TestFilter_RootWrapper(t *testing.T) {
	t.Parallel()

	value := element.New(element.TagObject, element.Sequence{
		member("a", element.ClassNameInherited),
		member("b"),
	}).WithClasses(element.ClassNameInherited)
	tree := element.Member("root", value)

	got := visibility.Filter(tree, removeInherited)

	w := got.Wrapped()
	require.NotNil(t, w)
	require.NotNil(t, w.Value)
	assert.Equal(t, []string{"b"}, ids(w.Value.Items()))
	assert.Equal(t, element.KindWrapper, element.KindOf(got.Content))
}

func TestFilter_DeepWrapperPropagation(t *testing.T) {
	t.Parallel()

	inner := element.Member("inner", element.New(element.TagString, nil).WithClasses(element.ClassNameIncluded))
	tree := element.New(element.TagObject, element.Sequence{
		member("a"),
		element.Member("outer", inner).WithID("outer"),
	})

	got := visibility.Filter(tree, removeIncluded)
	assert.Equal(t, []string{"a"}, ids(got.Items()))
}

func TestFilter_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, visibility.Filter(nil, removeBoth))
}

// randomTree builds a reproducible tree mixing objects, arrays, members and
// scalars, with classifications scattered at every depth.
func randomTree(r *rand.Rand, depth int, next *int) *element.Element {
	*next++
	id := fmt.Sprintf("n%d", *next)

	var classes []string

	switch r.IntN(6) {
	case 0:
		classes = []string{element.ClassNameInherited}
	case 1:
		classes = []string{element.ClassNameIncluded}
	case 2:
		classes = []string{element.ClassNameInherited, element.ClassNameIncluded}
	}

	if depth >= 4 {
		return element.New(element.TagString, element.Scalar{Value: id}).WithID(id).WithClasses(classes...)
	}

	switch r.IntN(3) {
	case 0:
		return element.Member(id, randomTree(r, depth+1, next)).WithID(id).WithClasses(classes...)
	default:
		tag := element.TagObject
		if r.IntN(2) == 0 {
			tag = element.TagArray
		}

		n := r.IntN(4)
		seq := make(element.Sequence, 0, n)

		for range n {
			seq = append(seq, randomTree(r, depth+1, next))
		}

		return element.New(tag, seq).WithID(id).WithClasses(classes...)
	}
}

func randomRoot(seed uint64) *element.Element {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	next := 0

	seq := element.Sequence{}
	for range 4 {
		seq = append(seq, randomTree(r, 1, &next))
	}

	return element.New(element.TagObject, seq).WithID("root")
}

func TestFilter_Properties(t *testing.T) {
	t.Parallel()

	allOpts := []visibility.Options{{}, removeInherited, removeIncluded, removeBoth}

	for seed := range uint64(50) {
		tree := randomRoot(seed)
		before := tree.Clone()

		for _, opts := range allOpts {
			once := visibility.Filter(tree, opts)
			twice := visibility.Filter(once, opts)

			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("seed %d, %+v: not idempotent (-once +twice):\n%s", seed, opts, diff)
			}

			if !opts.Active() {
				require.Equal(t, tree, once, "seed %d: default options changed the tree", seed)
			}

			element.Walk(once, func(e *element.Element, depth int) bool {
				if depth > 0 && opts.Drops(e) {
					t.Errorf("seed %d, %+v: %s survived at depth %d", seed, opts, e.Meta.ID, depth)
				}

				return true
			})

			// Survivors keep their relative order.
			var (
				orig []string
				kept = map[string]bool{}
			)

			// Member keys carry no id and are skipped.
			element.Walk(once, func(e *element.Element, _ int) bool {
				kept[e.Meta.ID] = e.Meta.ID != ""
				return true
			})
			element.Walk(tree, func(e *element.Element, _ int) bool {
				if kept[e.Meta.ID] {
					orig = append(orig, e.Meta.ID)
				}

				return true
			})

			var got []string

			element.Walk(once, func(e *element.Element, _ int) bool {
				if e.Meta.ID != "" {
					got = append(got, e.Meta.ID)
				}

				return true
			})
			assert.Equal(t, orig, got, "seed %d, %+v: order changed", seed, opts)
		}

		require.Equal(t, before, tree, "seed %d: input was modified", seed)
	}
}
