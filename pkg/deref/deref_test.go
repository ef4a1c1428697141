package deref_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/attrkit/pkg/catalog"
	"github.com/MacroPower/attrkit/pkg/deref"
	"github.com/MacroPower/attrkit/pkg/element"
)

func ageMember() *element.Element {
	return element.Member("age", element.New(element.TagNumber, nil)).WithID("m1")
}

func personCatalog() catalog.Catalog {
	return catalog.Catalog{
		"Person": element.New(element.TagObject, element.Sequence{ageMember()}).WithID("Person"),
	}
}

func TestResolve_SimpleDereference(t *testing.T) {
	t.Parallel()

	got, err := deref.Resolve(element.New("Person", nil), personCatalog())
	require.NoError(t, err)

	want := element.New(element.TagObject, element.Sequence{ageMember()})
	want.Meta.Ref = "Person"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Chain(t *testing.T) {
	t.Parallel()

	cat := catalog.Catalog{
		"A": element.New("B", nil).WithID("A"),
		"B": element.New(element.TagObject, element.Sequence{ageMember()}).WithID("B"),
	}

	got, err := deref.Resolve(element.New("A", nil).WithID("root"), cat)
	require.NoError(t, err)

	assert.Equal(t, element.TagObject, got.Tag)
	assert.Equal(t, "A", got.Meta.Ref)
	assert.Equal(t, "root", got.Meta.ID)
	assert.Equal(t, element.Sequence{ageMember()}, got.Content)
}

func TestResolve_Nested(t *testing.T) {
	t.Parallel()

	cat := catalog.Catalog{
		"Person":  element.New(element.TagObject, element.Sequence{ageMember()}).WithID("Person"),
		"Address": element.New(element.TagObject, element.Sequence{}).WithID("Address"),
		"Family": element.New(element.TagObject, element.Sequence{
			element.Member("members", element.New(element.TagArray, element.Sequence{
				element.New("Person", nil).WithID("p"),
			})).WithID("f1"),
			element.Member("home", element.New("Address", nil).WithID("a")).WithID("f2"),
		}).WithID("Family"),
	}

	got, err := deref.Resolve(element.New("Family", nil), cat)
	require.NoError(t, err)

	var unresolved []string

	element.Walk(got, func(e *element.Element, _ int) bool {
		if _, ok := cat[e.Tag]; ok {
			unresolved = append(unresolved, e.Tag)
		}

		return true
	})
	assert.Empty(t, unresolved)

	members := got.Items()[0].Wrapped().Value
	person := members.Items()[0]
	assert.Equal(t, element.TagObject, person.Tag)
	assert.Equal(t, "Person", person.Meta.Ref)
	assert.Equal(t, "p", person.Meta.ID)

	home := got.Items()[1].Wrapped().Value
	assert.Equal(t, "Address", home.Meta.Ref)
	assert.Equal(t, element.Sequence{}, home.Content)
}

func TestResolve_UnresolvedPassthrough(t *testing.T) {
	t.Parallel()

	got, err := deref.Resolve(element.New("Ghost", nil), catalog.Catalog{})
	require.NoError(t, err)
	assert.Equal(t, element.New("Ghost", nil), got)

	_, err = deref.Resolve(element.New("Ghost", nil), catalog.Catalog{}, deref.WithStrict())
	require.ErrorIs(t, err, deref.ErrUnresolvedReference)

	// Primitive tags are never unresolved references.
	_, err = deref.Resolve(element.New(element.TagString, nil), nil, deref.WithStrict())
	require.NoError(t, err)
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	cat := personCatalog()
	catBefore := cat["Person"].Clone()

	root := element.New(element.TagObject, element.Sequence{
		element.Member("owner", element.New("Person", nil)),
	})
	rootBefore := root.Clone()

	got, err := deref.Resolve(root, cat)
	require.NoError(t, err)

	got.Items()[0].Wrapped().Value.Items()[0].Meta.ID = "changed"

	assert.Equal(t, rootBefore, root)
	assert.Equal(t, catBefore, cat["Person"])
}

func TestResolve_SharedStructuresAreCopied(t *testing.T) {
	t.Parallel()

	root := element.New(element.TagArray, element.Sequence{
		element.New("Person", nil),
		element.New("Person", nil),
	})

	got, err := deref.Resolve(root, personCatalog())
	require.NoError(t, err)

	got.Items()[0].Items()[0].Meta.ID = "changed"
	assert.Equal(t, "m1", got.Items()[1].Items()[0].Meta.ID)
}

func TestResolve_Cycles(t *testing.T) {
	t.Parallel()

	tcs := map[string]catalog.Catalog{
		"self": {
			"Node": element.New(element.TagObject, element.Sequence{
				element.Member("next", element.New("Node", nil)),
			}).WithID("Node"),
		},
		"mutual": {
			"A": element.New("B", nil).WithID("A"),
			"B": element.New("A", nil).WithID("B"),
		},
	}

	for name, cat := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := element.New(cat.Names()[0], nil)

			_, err := deref.Resolve(root, cat)
			require.ErrorIs(t, err, deref.ErrCyclicReference)
		})
	}
}

func TestResolve_CycleKeepReference(t *testing.T) {
	t.Parallel()

	cat := catalog.Catalog{
		"Node": element.New(element.TagObject, element.Sequence{
			element.Member("next", element.New("Node", nil)),
		}).WithID("Node"),
	}

	got, err := deref.Resolve(element.New("Node", nil), cat, deref.WithCyclePolicy(deref.CycleKeepReference))
	require.NoError(t, err)

	assert.Equal(t, element.TagObject, got.Tag)
	assert.Equal(t, "Node", got.Meta.Ref)

	next := got.Items()[0].Wrapped().Value
	assert.Equal(t, "Node", next.Tag)
	assert.Nil(t, next.Content)
}

func TestResolve_MaxDepth(t *testing.T) {
	t.Parallel()

	root := element.New(element.TagString, nil)
	for range 10 {
		root = element.New(element.TagArray, element.Sequence{root})
	}

	_, err := deref.Resolve(root, nil, deref.WithMaxDepth(5))
	require.ErrorIs(t, err, deref.ErrMaxDepthExceeded)

	_, err = deref.Resolve(root, nil, deref.WithMaxDepth(10))
	require.NoError(t, err)
}

func TestResolve_Inheritance(t *testing.T) {
	t.Parallel()

	school := element.Member("school", element.New(element.TagString, nil)).WithID("m2")
	root := element.New("Person", element.Sequence{school}).WithID("Student")

	plain, err := deref.Resolve(root, personCatalog())
	require.NoError(t, err)
	assert.Equal(t, element.Sequence{ageMember()}, plain.Content)

	got, err := deref.Resolve(root, personCatalog(), deref.WithInheritance())
	require.NoError(t, err)

	require.Len(t, got.Items(), 2)
	assert.True(t, element.IsInherited(got.Items()[0]))
	assert.Equal(t, "m1", got.Items()[0].Meta.ID)
	assert.False(t, element.IsInherited(got.Items()[1]))
	assert.Equal(t, "m2", got.Items()[1].Meta.ID)
	assert.Equal(t, "Person", got.Meta.Ref)
	assert.Equal(t, "Student", got.Meta.ID)
}

func TestResolve_Mixins(t *testing.T) {
	t.Parallel()

	root := element.New(element.TagObject, element.Sequence{
		element.Member("name", element.New(element.TagString, nil)).WithID("m0"),
		element.New(element.TagRef, element.Scalar{Value: "Person"}),
		element.New(element.TagRef, element.Scalar{Value: "Ghost"}),
	})

	plain, err := deref.Resolve(root, personCatalog())
	require.NoError(t, err)
	assert.Equal(t, root, plain)

	got, err := deref.Resolve(root, personCatalog(), deref.WithMixins())
	require.NoError(t, err)

	items := got.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "m0", items[0].Meta.ID)
	assert.Equal(t, "m1", items[1].Meta.ID)
	assert.True(t, element.IsIncluded(items[1]))
	assert.Equal(t, element.TagRef, items[2].Tag)
}

func TestResolve_Nil(t *testing.T) {
	t.Parallel()

	got, err := deref.Resolve(nil, personCatalog())
	require.NoError(t, err)
	assert.Nil(t, got)
}
