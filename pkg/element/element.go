package element

import (
	"encoding/json"
	"slices"
)

// Well-known element tags.
const (
	TagObject  = "object"
	TagArray   = "array"
	TagEnum    = "enum"
	TagMember  = "member"
	TagString  = "string"
	TagNumber  = "number"
	TagBoolean = "boolean"
	TagNull    = "null"
	TagRef     = "ref"
	TagSelect  = "select"
	TagOption  = "option"
)

var primitiveTags = []string{
	TagObject, TagArray, TagEnum, TagMember, TagString, TagNumber,
	TagBoolean, TagNull, TagRef, TagSelect, TagOption,
	"extend", "dataStructure", "category",
}

// IsPrimitiveTag reports whether tag is one of the built-in structural or
// primitive kinds, as opposed to the name of a user-defined structure.
func IsPrimitiveTag(tag string) bool {
	return slices.Contains(primitiveTags, tag)
}

// Element is a single node of an attribute tree.
type Element struct {
	Content    Content
	Attributes Attributes
	Meta       Meta
	Tag        string
}

// Meta holds the element's identity and provenance.
type Meta struct {
	// ID is unique within a tree and correlates a node across renders.
	ID string
	// Ref is set when the node's shape came from resolving a named
	// structure. It keeps the original name after Tag has been rewritten.
	Ref         string
	Title       string
	Description string
	Classes     Classes
}

// Attributes maps attribute names (typeAttributes, default, samples, ...) to
// their raw JSON values. Attributes are carried through unchanged.
type Attributes map[string]json.RawMessage

// New returns an [Element] with the given tag and content.
func New(tag string, content Content) *Element {
	return &Element{Tag: tag, Content: content}
}

// WithID sets the element's id and returns the element.
func (e *Element) WithID(id string) *Element {
	e.Meta.ID = id
	return e
}

// WithClasses adds the named classes and returns the element.
func (e *Element) WithClasses(names ...string) *Element {
	e.Meta.Classes = e.Meta.Classes.Add(names...)
	return e
}

// Items returns the element's sequence content, or nil when the content is
// not a [Sequence].
func (e *Element) Items() Sequence {
	if e == nil {
		return nil
	}

	seq, _ := e.Content.(Sequence)

	return seq
}

// Wrapped returns the element's wrapper content, or nil when the content is
// not a [*Wrapper].
func (e *Element) Wrapped() *Wrapper {
	if e == nil {
		return nil
	}

	w, _ := e.Content.(*Wrapper)

	return w
}

// Clone returns a deep copy of e. The copy shares no mutable state with e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}

	return &Element{
		Tag:        e.Tag,
		Meta:       e.Meta.clone(),
		Attributes: e.Attributes.clone(),
		Content:    cloneContent(e.Content),
	}
}

func (m Meta) clone() Meta {
	m.Classes = m.Classes.clone()
	return m
}

func (a Attributes) clone() Attributes {
	if a == nil {
		return nil
	}

	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = slices.Clone(v)
	}

	return out
}

// Member returns a member element with a string key and the given value.
func Member(key string, value *Element) *Element {
	return New(TagMember, &Wrapper{
		Key:   New(TagString, Scalar{Value: key}),
		Value: value,
	})
}
