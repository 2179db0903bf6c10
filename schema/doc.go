// Package schema provides the schema half of the comparison pipeline:
// inference of a draft-07 JSON Schema from a baseline payload,
// strictification of the inferred schema, and validation of a candidate
// payload against it.
//
// Inference is deterministic for a given payload shape and represents every
// key present in the sample as a schema property. Whole numbers infer as
// "integer", matching the sample-driven schema generators this tool is
// compatible with.
//
// Strictification sets additionalProperties to false on every object-typed
// subschema, turning any key present in the candidate but absent from the
// baseline's shape into a validation violation.
//
// Validation collects every violation in one pass and names offending
// properties explicitly for additionalProperties violations, the dominant
// real-world contract break (a new field appearing in an API response).
package schema
