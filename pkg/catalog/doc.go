// Package catalog defines the certification data model and the validator
// that turns an untrusted import into a typed, immutable [Catalog].
//
// # Overview
//
// A catalog is a flat list of certifications ([Cert]) and a flat list of
// directed links ([Link]) between them. Imports arrive as JSON, YAML or
// TOML and are decoded into generic values before validation, so the same
// rules apply whatever the source format:
//
//	cat, err := catalog.ReadFile("catalog.yaml")
//	if errors.IsSchemaError(err) {
//	    // reject the import; nothing partial is returned
//	}
//
// [Parse] checks the shape of every record, collects all cert ids, and only
// then checks link endpoints. Every violation is a SchemaError (code
// INVALID_SCHEMA in pkg/errors) that wraps one of the sentinel errors
// declared in this package.
//
// # Bundled Data
//
// [Default] returns the catalog embedded in the binary, used when no
// catalog file is given on the command line.
//
// # Vendors
//
// Graphs are built per vendor. [Catalog.ForVendor] returns that vendor's
// certs and the links whose endpoints both belong to it.
package catalog
