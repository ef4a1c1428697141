package outline

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MacroPower/attrkit/pkg/element"
	"github.com/MacroPower/attrkit/pkg/theme"
)

type styles struct {
	key         lipgloss.Style
	typ         lipgloss.Style
	ref         lipgloss.Style
	description lipgloss.Style
	sample      lipgloss.Style
	def         lipgloss.Style
	required    lipgloss.Style
	inherited   lipgloss.Style
	included    lipgloss.Style
}

// Printer writes outlines of element trees. A Printer is not safe for
// concurrent use.
type Printer struct {
	w      io.Writer
	caser  cases.Caser
	styles styles
	indent int
}

// Option configures a [Printer].
type Option func(*options)

type options struct {
	profile *termenv.Profile
}

// WithColorProfile forces the color profile instead of detecting it from the
// writer.
func WithColorProfile(p termenv.Profile) Option {
	return func(o *options) {
		o.profile = &p
	}
}

// New returns a [Printer] writing to w with styles taken from th. Colors are
// only emitted when w is a terminal.
func New(w io.Writer, th theme.Theme, opts ...Option) *Printer {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	profile := DetectProfile(w)
	if o.profile != nil {
		profile = *o.profile
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	indent := th.Indent
	if indent <= 0 {
		indent = theme.Default().Indent
	}

	return &Printer{
		w:      w,
		caser:  cases.Title(language.English),
		indent: indent,
		styles: styles{
			key:         newStyle(r, th.Key),
			typ:         newStyle(r, th.Type),
			ref:         newStyle(r, th.Ref),
			description: newStyle(r, th.Description),
			sample:      newStyle(r, th.Sample),
			def:         newStyle(r, th.Default),
			required:    newStyle(r, th.Required),
			inherited:   newStyle(r, th.Inherited),
			included:    newStyle(r, th.Included),
		},
	}
}

// DetectProfile returns the color profile for w: the environment's profile
// when w is a terminal, and no colors otherwise.
func DetectProfile(w io.Writer) termenv.Profile {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return termenv.Ascii
	}

	return termenv.EnvColorProfile()
}

func newStyle(r *lipgloss.Renderer, s theme.Style) lipgloss.Style {
	st := r.NewStyle()

	if s.Bold != nil {
		st = st.Bold(*s.Bold)
	}

	if s.Italic != nil {
		st = st.Italic(*s.Italic)
	}

	if s.Faint != nil {
		st = st.Faint(*s.Faint)
	}

	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}

	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}

	return st
}

// Print writes the outline of root. A nil root prints nothing.
func (p *Printer) Print(root *element.Element) error {
	if root == nil {
		return nil
	}

	buf := &bytes.Buffer{}
	p.node(buf, root, 0, "")

	if _, err := p.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}

	return nil
}

func (p *Printer) node(buf *bytes.Buffer, e *element.Element, depth int, prefix string) {
	if e == nil {
		return
	}

	buf.WriteString(strings.Repeat(" ", depth*p.indent))
	buf.WriteString(prefix)

	// Members print their key and describe their value.
	target := e
	if element.IsMember(e) {
		w := e.Wrapped()
		key := ""
		if w != nil {
			key = scalarString(w.Key)
			target = w.Value
		}

		buf.WriteString(p.memberKey(e, key))
		buf.WriteString(": ")
	}

	buf.WriteString(p.badge(e, target))
	buf.WriteByte('\n')

	for _, child := range target.Items() {
		childPrefix := ""
		if !element.IsMember(child) {
			childPrefix = "- "
		}

		p.node(buf, child, depth+1, childPrefix)
	}
}

func (p *Printer) memberKey(member *element.Element, key string) string {
	out := p.styles.key.Render(key)

	switch {
	case element.IsInherited(member):
		out = p.styles.inherited.Render(out)
	case element.IsIncluded(member):
		out = p.styles.included.Render(out)
	}

	return out
}

// badge describes target: its type, the structure it was resolved from, its
// literal value, flags and description. Flags may sit on either the member
// or its value.
func (p *Printer) badge(holder, target *element.Element) string {
	if target == nil {
		return p.styles.typ.Render("-")
	}

	parts := []string{p.styles.typ.Render(p.caser.String(target.Tag))}

	if target.Meta.Ref != "" {
		parts = append(parts, p.styles.ref.Render("("+target.Meta.Ref+")"))
	}

	if s, ok := target.Content.(element.Scalar); ok && s.Value != nil {
		parts = append(parts, p.styles.sample.Render(fmt.Sprintf("= %v", s.Value)))
	}

	if element.IsRequired(holder) || element.IsRequired(target) {
		parts = append(parts, p.styles.required.Render("required"))
	}

	if raw, ok := attribute(holder, target, "default"); ok {
		parts = append(parts, p.styles.def.Render("default "+string(raw)))
	}

	if raw, ok := attribute(holder, target, "samples"); ok {
		parts = append(parts, p.styles.sample.Render("samples "+string(raw)))
	}

	for _, class := range holder.Meta.Classes.Names() {
		style := p.styles.typ
		switch class {
		case element.ClassNameInherited:
			style = p.styles.inherited
		case element.ClassNameIncluded:
			style = p.styles.included
		}

		parts = append(parts, style.Render("["+class+"]"))
	}

	desc := target.Meta.Description
	if element.HasDescription(holder) {
		desc = holder.Meta.Description
	}

	if desc != "" {
		parts = append(parts, p.styles.description.Render("# "+desc))
	}

	return strings.Join(parts, " ")
}

func attribute(holder, target *element.Element, name string) ([]byte, bool) {
	has := element.HasDefaults
	if name == "samples" {
		has = element.HasSamples
	}

	for _, e := range []*element.Element{holder, target} {
		if has(e) {
			return bytes.TrimSpace(e.Attributes[name]), true
		}
	}

	return nil, false
}

func scalarString(e *element.Element) string {
	if e == nil {
		return ""
	}

	if s, ok := e.Content.(element.Scalar); ok && s.Value != nil {
		return fmt.Sprint(s.Value)
	}

	return e.Tag
}
