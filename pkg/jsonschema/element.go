package jsonschema

import (
	invopopjsonschema "github.com/invopop/jsonschema"
)

// ElementDefinition is the name of the element schema under $defs.
const ElementDefinition = "element"

func elementRef() *invopopjsonschema.Schema {
	return &invopopjsonschema.Schema{Ref: "#/$defs/" + ElementDefinition}
}

// stringValue matches a plain string or its refracted form.
func stringValue(desc string) *invopopjsonschema.Schema {
	return &invopopjsonschema.Schema{
		Description: desc,
		AnyOf: []*invopopjsonschema.Schema{
			{Type: "string"},
			elementRef(),
		},
	}
}

// ElementSchema returns the schema of a single element in its JSON wire
// form.
func ElementSchema() *invopopjsonschema.Schema {
	meta := invopopjsonschema.NewProperties()
	meta.Set("id", stringValue("Identifier, or the name of a data structure."))
	meta.Set("ref", stringValue("Name of the structure this element was resolved from."))
	meta.Set("title", stringValue(""))
	meta.Set("description", stringValue(""))
	meta.Set("classes", &invopopjsonschema.Schema{
		Description: "Class names. \"inherited\" and \"included\" mark members that came from a base type or a mixin.",
		AnyOf: []*invopopjsonschema.Schema{
			{Type: "array", Items: &invopopjsonschema.Schema{Type: "string"}},
			elementRef(),
		},
	})

	pair := invopopjsonschema.NewProperties()
	pair.Set("key", elementRef())
	pair.Set("value", elementRef())

	props := invopopjsonschema.NewProperties()
	props.Set("element", &invopopjsonschema.Schema{
		Type:        "string",
		Description: "Element tag: a primitive type, or the name of a data structure.",
	})
	props.Set("meta", &invopopjsonschema.Schema{Type: "object", Properties: meta})
	props.Set("attributes", &invopopjsonschema.Schema{
		Type:        "object",
		Description: "Attributes such as typeAttributes, default and samples.",
	})
	props.Set("content", &invopopjsonschema.Schema{
		AnyOf: []*invopopjsonschema.Schema{
			{Type: "null"},
			{Type: "array", Items: elementRef()},
			{Type: "object", Properties: pair},
			elementRef(),
			{Type: "string"},
			{Type: "number"},
			{Type: "boolean"},
		},
	})

	return &invopopjsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{"element"},
	}
}
