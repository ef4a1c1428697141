package jsonschema

import (
	"reflect"

	invopopjsonschema "github.com/invopop/jsonschema"

	"github.com/MacroPower/attrkit/pkg/element"
	"github.com/MacroPower/attrkit/pkg/normalize"
)

var elementTypes = map[reflect.Type]bool{
	reflect.TypeOf(element.Element{}):  true,
	reflect.TypeOf(&element.Element{}): true,
}

type Reflector struct {
	Reflector *invopopjsonschema.Reflector
}

// NewReflector returns a [Reflector] that inlines structs and replaces every
// [element.Element] with a reference to [ElementDefinition].
func NewReflector() *Reflector {
	return &Reflector{
		Reflector: &invopopjsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
			Mapper: func(t reflect.Type) *invopopjsonschema.Schema {
				if elementTypes[t] {
					return elementRef()
				}

				return nil
			},
		},
	}
}

// Reflect returns the schema of t. When t contains elements, the element
// definition is added to the schema.
func (r *Reflector) Reflect(t reflect.Type) *invopopjsonschema.Schema {
	s := r.Reflector.ReflectFromType(t)
	if s.Definitions == nil {
		s.Definitions = invopopjsonschema.Definitions{}
	}

	s.Definitions[ElementDefinition] = ElementSchema()

	return s
}

// DocumentSchema returns the schema of [normalize.Document].
func DocumentSchema() *invopopjsonschema.Schema {
	s := NewReflector().Reflect(reflect.TypeOf(normalize.Document{}))
	s.Title = "attrkit document"
	s.Description = "A root element, the data structures it references, and rendering options."

	return s
}
