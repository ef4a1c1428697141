// Package jsonschema provides JSON Schemas for attrkit input documents.
//
// Go types are reflected with [github.com/invopop/jsonschema]. Elements are
// recursive and polymorphic, so their schema is written by hand and shared
// through a single definition.
package jsonschema
