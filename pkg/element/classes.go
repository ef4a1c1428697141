package element

import "slices"

// Class names with meaning to the normalization pipeline.
const (
	ClassNameInherited = "inherited"
	ClassNameIncluded  = "included"
)

// ClassFlags is the set of provenance classes the pipeline understands.
type ClassFlags uint8

const (
	// ClassInherited marks a node pulled in from a base structure.
	ClassInherited ClassFlags = 1 << iota
	// ClassIncluded marks a node pulled in from a mixed-in structure.
	ClassIncluded
)

// Classes is an element's classification. The zero value means "no
// classification".
type Classes struct {
	// Other holds class names without meaning to the pipeline. They are kept
	// so that trees round-trip, but never affect filtering.
	Other []string
	Flags ClassFlags
}

// ParseClasses builds a [Classes] value from class names.
func ParseClasses(names ...string) Classes {
	return Classes{}.Add(names...)
}

// Add returns c with the named classes added.
func (c Classes) Add(names ...string) Classes {
	for _, name := range names {
		switch name {
		case ClassNameInherited:
			c.Flags |= ClassInherited
		case ClassNameIncluded:
			c.Flags |= ClassIncluded
		case "":
		default:
			if !slices.Contains(c.Other, name) {
				c.Other = append(slices.Clone(c.Other), name)
			}
		}
	}

	return c
}

// Has reports whether all of the given flags are set.
func (c Classes) Has(f ClassFlags) bool {
	return f != 0 && c.Flags&f == f
}

// Empty reports whether c carries no classes at all.
func (c Classes) Empty() bool {
	return c.Flags == 0 && len(c.Other) == 0
}

// Names returns the class names in canonical order.
func (c Classes) Names() []string {
	if c.Empty() {
		return nil
	}

	names := make([]string, 0, 2+len(c.Other))
	if c.Has(ClassInherited) {
		names = append(names, ClassNameInherited)
	}

	if c.Has(ClassIncluded) {
		names = append(names, ClassNameIncluded)
	}

	return append(names, c.Other...)
}

func (c Classes) clone() Classes {
	c.Other = slices.Clone(c.Other)
	return c
}
