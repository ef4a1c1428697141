package element

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"sigs.k8s.io/yaml"
)

var (
	// ErrInvalidContent indicates content that is neither a list, a key/value
	// wrapper, nor a literal.
	ErrInvalidContent = errors.New("invalid content")

	// ErrInvalidElement indicates input that does not decode to an element.
	ErrInvalidElement = errors.New("invalid element")
)

type wireElement struct {
	Element    string     `json:"element"`
	Meta       *wireMeta  `json:"meta,omitempty"`
	Attributes Attributes `json:"attributes,omitempty"`
	Content    any        `json:"content,omitempty"`
}

type wireMeta struct {
	ID          string   `json:"id,omitempty"`
	Ref         string   `json:"ref,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Classes     []string `json:"classes,omitempty"`
}

type wireWrapper struct {
	Key   *Element `json:"key,omitempty"`
	Value *Element `json:"value,omitempty"`
}

// refracted is the API Elements shape of a value that is itself an element,
// e.g. `{"element": "string", "content": "Person"}`.
type refracted struct {
	Content json.RawMessage `json:"content"`
	Element string          `json:"element"`
}

// MarshalJSON encodes the element in its plain form.
func (e *Element) MarshalJSON() ([]byte, error) {
	w := wireElement{
		Element:    e.Tag,
		Attributes: e.Attributes,
	}

	m := wireMeta{
		ID:          e.Meta.ID,
		Ref:         e.Meta.Ref,
		Title:       e.Meta.Title,
		Description: e.Meta.Description,
		Classes:     e.Meta.Classes.Names(),
	}
	if m.ID != "" || m.Ref != "" || m.Title != "" || m.Description != "" || len(m.Classes) > 0 {
		w.Meta = &m
	}

	switch c := e.Content.(type) {
	case Sequence:
		items := []*Element(c)
		if items == nil {
			items = []*Element{}
		}

		w.Content = items

	case Scalar:
		if c.Value != nil {
			w.Content = c.Value
		}

	case *Wrapper:
		switch {
		case c == nil:
		case c.Bare && c.Key == nil:
			if c.Value != nil {
				w.Content = c.Value
			}
		default:
			w.Content = wireWrapper{Key: c.Key, Value: c.Value}
		}
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes an element in either plain or refracted form.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		Meta       json.RawMessage `json:"meta"`
		Attributes Attributes      `json:"attributes"`
		Content    json.RawMessage `json:"content"`
		Element    string          `json:"element"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidElement, err)
	}

	content, err := decodeContent(raw.Content)
	if err != nil {
		return fmt.Errorf("element %q: %w", raw.Element, err)
	}

	*e = Element{
		Tag:        raw.Element,
		Meta:       decodeMeta(raw.Meta),
		Attributes: raw.Attributes,
		Content:    content,
	}

	return nil
}

func decodeContent(raw json.RawMessage) (Content, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var items []*Element
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}

		seq := make(Sequence, 0, len(items))
		for _, item := range items {
			if item != nil {
				seq = append(seq, item)
			}
		}

		return seq, nil

	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}

		// A bare element as content is a keyless wrapped value.
		if _, ok := fields["element"]; ok {
			v := &Element{}
			if err := json.Unmarshal(raw, v); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
			}

			return &Wrapper{Value: v, Bare: true}, nil
		}

		_, hasKey := fields["key"]
		_, hasValue := fields["value"]
		if !hasKey && !hasValue {
			return nil, fmt.Errorf("%w: object content without key, value or element", ErrInvalidContent)
		}

		var w wireWrapper
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}

		return &Wrapper{Key: w.Key, Value: w.Value}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}

	return Scalar{Value: v}, nil
}

// decodeMeta never fails. Fields of an unexpected shape decode as empty.
func decodeMeta(raw json.RawMessage) Meta {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return Meta{}
	}

	return Meta{
		ID:          decodeString(fields["id"]),
		Ref:         decodeString(fields["ref"]),
		Title:       decodeString(fields["title"]),
		Description: decodeString(fields["description"]),
		Classes:     ParseClasses(decodeStringList(fields["classes"])...),
	}
}

// decodeString accepts `"x"` and `{"element": "string", "content": "x"}`.
func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	var r refracted
	if json.Unmarshal(raw, &r) != nil || len(r.Content) == 0 {
		return ""
	}

	if json.Unmarshal(r.Content, &s) == nil {
		return s
	}

	return ""
}

// decodeStringList accepts `["a", "b"]`, a list of refracted strings, and
// `{"element": "array", "content": [...]}`. Anything else is an empty list.
func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var r refracted
	if json.Unmarshal(raw, &r) == nil && r.Element != "" {
		raw = r.Content
	}

	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := decodeString(item); s != "" {
			out = append(out, s)
		}
	}

	return out
}

// ParseJSON decodes a single element from JSON.
func ParseJSON(data []byte) (*Element, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	e := &Element{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	return e, nil
}

// ParseYAML decodes a single element from YAML (or JSON, which is YAML).
func ParseYAML(data []byte) (*Element, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidElement, err)
	}

	return ParseJSON(js)
}

// MarshalYAML encodes the element as YAML.
func MarshalYAML(e *Element) ([]byte, error) {
	b, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}
