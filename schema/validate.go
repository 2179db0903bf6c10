package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mariogalea/qualitymatters-apiveritas/payload"
)

// schemaResource is the synthetic URL under which the inferred schema is
// registered with the compiler.
const schemaResource = "inferred://baseline.json"

// Validator validates candidate payloads against inferred baseline schemas.
// It collects every violation of a validation pass, not just the first.
// A Validator is not safe for concurrent use; comparison runs are
// single-threaded.
type Validator struct {
	printer *message.Printer
	errs    []string
}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{
		printer: message.NewPrinter(language.English),
	}
}

// Validate compiles the given schema document and validates the candidate
// payload against it. It returns true when the payload conforms; when it
// does not, every violation is retained and available through Errors.
//
// Compilation is tolerant of unknown schema keywords: the inferred schema
// need not be a fully compliant schema document. A schema that fails to
// compile at all is reported as a single violation rather than an error,
// so one malformed baseline never aborts a comparison run.
func (v *Validator) Validate(schemaDoc map[string]any, data payload.Value) bool {
	v.errs = nil

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, schemaDoc); err != nil {
		v.errs = append(v.errs, fmt.Sprintf("schema could not be loaded: %v", err))
		return false
	}

	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		v.errs = append(v.errs, fmt.Sprintf("schema could not be compiled: %v", err))
		return false
	}

	err = compiled.Validate(data.Interface())
	if err == nil {
		return true
	}

	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		v.collect(ve)
	}
	if len(v.errs) == 0 {
		v.errs = append(v.errs, err.Error())
	}
	return false
}

// Errors returns the violations of the most recent Validate call.
// It returns nil when the last validation passed.
func (v *Validator) Errors() []string {
	return v.errs
}

// collect walks the cause tree depth-first and renders each leaf violation.
func (v *Validator) collect(ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		v.errs = append(v.errs, v.render(ve)...)
		return
	}
	for _, cause := range ve.Causes {
		v.collect(cause)
	}
}

// render formats one leaf violation. additionalProperties violations name
// each offending property explicitly so that an unexpected field added to an
// API response is distinguishable from generic schema errors.
func (v *Validator) render(ve *jsonschema.ValidationError) []string {
	loc := instancePath(ve.InstanceLocation)

	if ap, ok := ve.ErrorKind.(*kind.AdditionalProperties); ok {
		msgs := make([]string, 0, len(ap.Properties))
		for _, prop := range ap.Properties {
			msgs = append(msgs, fmt.Sprintf("Unexpected property %q at %s", prop, loc))
		}
		return msgs
	}

	return []string{fmt.Sprintf("%s at %s", ve.ErrorKind.LocalizedString(v.printer), loc)}
}

// instancePath converts a validation error's instance location to the
// dot-delimited path notation used by difference records ("#" for root).
func instancePath(segments []string) string {
	if len(segments) == 0 {
		return "#"
	}
	return strings.Join(segments, ".")
}
