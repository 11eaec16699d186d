// Package records implements the typed domain records produced by the
// parsers and their accumulating validation.
//
// Every record kind embeds Base, which owns the record's findings and its
// staged timestamp. Findings are never cleared: once a record has been found
// invalid it stays invalid, even if the offending field is corrected later.
//
// The set of kinds is closed. Each kind declares its attributes as struct
// fields tagged with their raw field names; SetData converts raw values into
// those fields and keeps undeclared keys in the overflow container.
package records
