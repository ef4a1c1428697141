package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

var (
	ErrMergeTheme = errors.New("merge theme")
	ErrLoadTheme  = errors.New("load theme")
)

// Style describes how one part of a rendered tree looks. Empty strings and
// nil flags mean "unset".
type Style struct {
	Bold       *bool  `json:"bold,omitempty"       yaml:"bold,omitempty"`
	Italic     *bool  `json:"italic,omitempty"     yaml:"italic,omitempty"`
	Faint      *bool  `json:"faint,omitempty"      yaml:"faint,omitempty"`
	Foreground string `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
}

// Theme groups the styles of each part of a rendered tree.
type Theme struct {
	Key         Style `json:"key"         yaml:"key,omitempty"`
	Type        Style `json:"type"        yaml:"type,omitempty"`
	Ref         Style `json:"ref"         yaml:"ref,omitempty"`
	Description Style `json:"description" yaml:"description,omitempty"`
	Sample      Style `json:"sample"      yaml:"sample,omitempty"`
	Default     Style `json:"default"     yaml:"default,omitempty"`
	Required    Style `json:"required"    yaml:"required,omitempty"`
	Inherited   Style `json:"inherited"   yaml:"inherited,omitempty"`
	Included    Style `json:"included"    yaml:"included,omitempty"`
	// Indent is the number of columns per nesting level.
	Indent int `json:"indent" yaml:"indent,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

// Default returns the default theme.
func Default() Theme {
	return Theme{
		Key:         Style{Bold: ptr(true), Foreground: "#1F2933"},
		Type:        Style{Foreground: "#8A8F98"},
		Ref:         Style{Foreground: "#3A77D8"},
		Description: Style{Italic: ptr(true), Foreground: "#52606D"},
		Sample:      Style{Foreground: "#2F9E44"},
		Default:     Style{Foreground: "#E8590C"},
		Required:    Style{Bold: ptr(true), Foreground: "#C92A2A"},
		Inherited:   Style{Faint: ptr(true)},
		Included:    Style{Faint: ptr(true)},
		Indent:      2,
	}
}

// Merge returns base with every field set in override replacing the
// corresponding field of base. Fields left unset in override keep their base
// value. Neither argument is modified, and the result shares no pointers with
// either.
func Merge(base, override Theme) (Theme, error) {
	dst := base.Clone()
	src := override.Clone()

	// Without dereferencing, a set *bool replaces the base pointer, so an
	// explicit false overrides a true default.
	if err := mergo.Merge(&dst, src, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return Theme{}, fmt.Errorf("%w: %w", ErrMergeTheme, err)
	}

	return dst, nil
}

// Clone returns a deep copy of t.
func (t Theme) Clone() Theme {
	t.Key = t.Key.clone()
	t.Type = t.Type.clone()
	t.Ref = t.Ref.clone()
	t.Description = t.Description.clone()
	t.Sample = t.Sample.clone()
	t.Default = t.Default.clone()
	t.Required = t.Required.clone()
	t.Inherited = t.Inherited.clone()
	t.Included = t.Included.clone()

	return t
}

func (s Style) clone() Style {
	s.Bold = cloneBool(s.Bold)
	s.Italic = cloneBool(s.Italic)
	s.Faint = cloneBool(s.Faint)

	return s
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}

	return ptr(*b)
}

// Load reads a partial theme from a YAML file. Unknown keys are an error.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %w", ErrLoadTheme, err)
	}

	return Parse(data)
}

// Parse decodes a partial theme from YAML. Unknown keys are an error.
func Parse(data []byte) (Theme, error) {
	var t Theme

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Theme{}, fmt.Errorf("%w: %w", ErrLoadTheme, err)
	}

	return t, nil
}

// Resolve merges override, if any, onto the default theme.
func Resolve(override *Theme) (Theme, error) {
	if override == nil {
		return Default(), nil
	}

	return Merge(Default(), *override)
}
