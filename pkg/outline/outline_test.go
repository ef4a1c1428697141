package outline_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/attrkit/pkg/element"
	"github.com/MacroPower/attrkit/pkg/outline"
	"github.com/MacroPower/attrkit/pkg/theme"
)

func personTree() *element.Element {
	name := element.Member("name", element.New(element.TagString, nil))
	name.Meta.Description = "Full name"
	name.Attributes = element.Attributes{"typeAttributes": json.RawMessage(`["required"]`)}

	age := element.Member("age", element.New(element.TagNumber, nil)).WithClasses(element.ClassNameInherited)
	age.Attributes = element.Attributes{"default": json.RawMessage(`30`)}

	tags := element.Member("tags", element.New(element.TagArray, element.Sequence{
		element.New(element.TagString, element.Scalar{Value: "a"}),
	}))

	root := element.New(element.TagObject, element.Sequence{name, age, tags})
	root.Meta.Ref = "Person"

	return root
}

func TestPrint(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		root   *element.Element
		indent int
		want   string
	}{
		"person": {
			root: personTree(),
			want: "Object (Person)\n" +
				"  name: String required # Full name\n" +
				"  age: Number default 30 [inherited]\n" +
				"  tags: Array\n" +
				"    - String = a\n",
		},
		"wide indent": {
			root: element.New(element.TagEnum, element.Sequence{
				element.New(element.TagString, element.Scalar{Value: "red"}),
				element.New(element.TagString, element.Scalar{Value: "blue"}).WithClasses(element.ClassNameIncluded),
			}),
			indent: 4,
			want: "Enum\n" +
				"    - String = red\n" +
				"    - String = blue [included]\n",
		},
		"member without value": {
			root: element.New(element.TagObject, element.Sequence{
				element.New(element.TagMember, &element.Wrapper{
					Key: element.New(element.TagString, element.Scalar{Value: "x"}),
				}),
			}),
			want: "Object\n" +
				"  x: -\n",
		},
		"nil": {
			root: nil,
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			th := theme.Default()
			if tc.indent != 0 {
				th.Indent = tc.indent
			}

			buf := &bytes.Buffer{}
			p := outline.New(buf, th)

			require.NoError(t, p.Print(tc.root))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestPrint_Color(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := outline.New(buf, theme.Default(), outline.WithColorProfile(termenv.TrueColor))

	require.NoError(t, p.Print(personTree()))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "name")
}

func TestDetectProfile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, termenv.Ascii, outline.DetectProfile(&bytes.Buffer{}))
}
