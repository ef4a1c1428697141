package element

// Content is the payload of an [Element]. It is one of nil (absent),
// [Sequence], [Scalar], or [*Wrapper].
type Content interface {
	isContent()
}

// Sequence is an ordered list of sibling elements. Order is significant.
type Sequence []*Element

// Scalar is a literal primitive value: a string, a json.Number, a bool, or
// nil.
type Scalar struct {
	Value any
}

// Wrapper holds a single nested payload, such as the key and value of an
// object member.
type Wrapper struct {
	Key   *Element
	Value *Element
	// Bare marks a payload that is a single element with no key, such as the
	// content of a dataStructure. It is encoded as the element itself.
	Bare bool
}

func (Sequence) isContent() {}
func (Scalar) isContent()   {}
func (*Wrapper) isContent() {}

// Kind names the variant of a [Content] value.
type Kind int

const (
	KindAbsent Kind = iota
	KindSequence
	KindScalar
	KindWrapper
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	case KindWrapper:
		return "wrapper"
	case KindAbsent:
		return "absent"
	}

	return "unknown"
}

// KindOf returns the variant of c.
func KindOf(c Content) Kind {
	switch c := c.(type) {
	case Sequence:
		return KindSequence
	case Scalar:
		return KindScalar
	case *Wrapper:
		if c == nil {
			return KindAbsent
		}

		return KindWrapper
	}

	return KindAbsent
}

func cloneContent(c Content) Content {
	switch c := c.(type) {
	case Sequence:
		if c == nil {
			return Sequence(nil)
		}

		out := make(Sequence, len(c))
		for i, item := range c {
			out[i] = item.Clone()
		}

		return out

	case Scalar:
		return c

	case *Wrapper:
		if c == nil {
			return nil
		}

		return &Wrapper{Key: c.Key.Clone(), Value: c.Value.Clone(), Bare: c.Bare}
	}

	return nil
}
