// Package schema holds the explicit record-type registry the walker expands.
//
// A record type is a name plus an ordered list of declared fields. Each field
// carries a declared type name which the Classifier sorts into scalar leaves
// (Go predeclared types, standard library types, configured prefixes and
// registered scalar names) and composite references to other record types.
//
// Types are either declared explicitly (Define, BuildFromConfig) or derived
// from Go struct types (Derive).
package schema
