// Package source reads element documents from disk.
//
// Files may be JSON or YAML and may be gzip-compressed. A JSON pointer can
// select a sub-document, which is useful when the attribute tree of interest
// sits deep inside a larger API Elements parse result.
package source
