package element

import (
	"bytes"
	"encoding/json"
	"slices"
)

// IsObject reports whether e is an object.
func IsObject(e *Element) bool { return e != nil && e.Tag == TagObject }

// IsArray reports whether e is an array.
func IsArray(e *Element) bool { return e != nil && e.Tag == TagArray }

// IsEnum reports whether e is an enum.
func IsEnum(e *Element) bool { return e != nil && e.Tag == TagEnum }

// IsMember reports whether e is an object member.
func IsMember(e *Element) bool { return e != nil && e.Tag == TagMember }

// IsInherited reports whether e is classified as inherited. A nil element is
// never inherited.
func IsInherited(e *Element) bool {
	return e != nil && e.Meta.Classes.Has(ClassInherited)
}

// IsIncluded reports whether e is classified as included. A nil element is
// never included.
func IsIncluded(e *Element) bool {
	return e != nil && e.Meta.Classes.Has(ClassIncluded)
}

// HasDescription reports whether e has a non-empty description.
func HasDescription(e *Element) bool {
	return e != nil && e.Meta.Description != ""
}

// HasSamples reports whether e carries a non-empty samples attribute.
func HasSamples(e *Element) bool {
	return e != nil && nonEmptyAttribute(e.Attributes["samples"])
}

// HasDefaults reports whether e carries a default attribute.
func HasDefaults(e *Element) bool {
	return e != nil && nonEmptyAttribute(e.Attributes["default"])
}

// IsRequired reports whether "required" is among e's type attributes.
func IsRequired(e *Element) bool {
	if e == nil {
		return false
	}

	return slices.Contains(decodeStringList(e.Attributes["typeAttributes"]), "required")
}

// IsExpandable reports whether e has nested structure worth expanding: an
// object, array or enum with members, or a member whose value is one.
func IsExpandable(e *Element) bool {
	if e == nil {
		return false
	}

	switch c := e.Content.(type) {
	case Sequence:
		return (IsObject(e) || IsArray(e) || IsEnum(e)) && len(c) > 0
	case *Wrapper:
		return c != nil && IsExpandable(c.Value)
	}

	return false
}

func nonEmptyAttribute(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}

	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		return len(list) > 0
	}

	var r refracted
	if json.Unmarshal(raw, &r) == nil && r.Element != "" {
		return nonEmptyAttribute(r.Content)
	}

	return true
}
