package comparer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mariogalea/qualitymatters-apiveritas/differ"
	"github.com/mariogalea/qualitymatters-apiveritas/payload"
	"github.com/mariogalea/qualitymatters-apiveritas/schema"
)

// CompareFolders compares every payload file of the baseline folder against
// its counterpart in the candidate folder and aggregates the outcomes into a
// run verdict.
//
// The file set is the baseline folder's listing: a file present only in the
// candidate folder is invisible to the run. This matches the tool's
// baseline-is-the-contract philosophy and is a deliberate asymmetry.
//
// Errors local to one file degrade to a blocking difference on that file's
// result; only an unreadable baseline folder aborts the run.
func (c *Comparer) CompareFolders(oldID, newID, suite string) (*RunVerdict, error) {
	files, err := c.store.Files(suite, oldID)
	if err != nil {
		return nil, fmt.Errorf("listing baseline folder: %w", err)
	}

	verdict := &RunVerdict{
		RunID:     uuid.NewString(),
		Suite:     suite,
		OldFolder: oldID,
		NewFolder: newID,
	}

	for _, file := range files {
		result := c.compareFile(suite, oldID, newID, file)
		verdict.Results = append(verdict.Results, result)
		if result.Matched {
			verdict.MatchedCount++
		} else {
			verdict.DiffCount++
		}
	}

	verdict.TotalFiles = len(files)
	verdict.AnyDifferences = verdict.DiffCount > 0

	c.logger.Info("comparison run complete",
		zap.String("suite", suite),
		zap.String("old_folder", oldID),
		zap.String("new_folder", newID),
		zap.Int("matched", verdict.MatchedCount),
		zap.Int("diffs", verdict.DiffCount),
	)

	if c.Reporter != nil {
		path, reportErr := c.Reporter.Write(verdict)
		if reportErr != nil {
			c.logger.Warn("report generation failed", zap.Error(reportErr))
		} else {
			c.logger.Info("report written", zap.String("path", path))
		}
	}

	return verdict, nil
}

// compareFile runs the per-file state machine: missing file, empty payload
// handling, then the structural differ and the schema pipeline.
func (c *Comparer) compareFile(suite, oldID, newID, file string) FileComparisonResult {
	result := FileComparisonResult{FileName: file}

	if !c.store.Exists(suite, newID, file) {
		result.Differences = []differ.Difference{{
			Path:     differ.RootPath,
			Kind:     differ.KindFileMissing,
			Message:  fmt.Sprintf("file %s is missing from snapshot folder %s", file, newID),
			Severity: differ.SeverityBlocking,
		}}
		return result
	}

	result.OldContent = c.loadPayload(suite, oldID, file)
	result.NewContent = c.loadPayload(suite, newID, file)

	if result.OldContent.IsEmpty() || result.NewContent.IsEmpty() {
		return c.resolveEmpty(result)
	}

	diffs := c.differ.Compare(result.OldContent, result.NewContent, "")
	var blocking, informational []differ.Difference
	for _, d := range diffs {
		if d.IsBlocking() {
			blocking = append(blocking, d)
		} else {
			informational = append(informational, d)
		}
	}

	schemaDiffs := c.validateAgainstBaseline(result.OldContent, result.NewContent)

	result.Matched = len(blocking) == 0 && len(schemaDiffs) == 0
	result.Differences = append(append(blocking, schemaDiffs...), informational...)
	return result
}

// loadPayload reads and parses one payload file. Read failures and
// unparsable content degrade to the Empty sentinel with a logged warning.
func (c *Comparer) loadPayload(suite, folderID, file string) payload.Value {
	raw, err := c.store.Read(suite, folderID, file)
	if err != nil {
		c.logger.Warn("payload unreadable, treating as empty",
			zap.String("folder", folderID),
			zap.String("file", file),
			zap.Error(err),
		)
		return payload.Empty
	}

	value, err := payload.Parse(raw)
	if err != nil {
		c.logger.Warn("payload unparsable, treating as empty",
			zap.String("folder", folderID),
			zap.String("file", file),
			zap.Error(err),
		)
	}
	return value
}

// resolveEmpty finishes a file whose baseline or candidate payload is Empty,
// honoring the empty-response tolerance setting.
func (c *Comparer) resolveEmpty(result FileComparisonResult) FileComparisonResult {
	message := fmt.Sprintf("empty payload (baseline is %s, candidate is %s)",
		result.OldContent.TypeName(), result.NewContent.TypeName())

	if c.opts.TolerateEmptyResponses {
		result.Matched = true
		result.Differences = []differ.Difference{{
			Path:     differ.RootPath,
			Kind:     differ.KindEmptyPayload,
			Message:  message + ", tolerated by configuration",
			Severity: differ.SeverityInformational,
		}}
		return result
	}

	result.Differences = []differ.Difference{{
		Path:     differ.RootPath,
		Kind:     differ.KindEmptyPayload,
		Message:  message,
		Severity: differ.SeverityBlocking,
	}}
	return result
}

// validateAgainstBaseline runs the schema pipeline: infer from the baseline,
// strictify when configured, validate the candidate. Every violation becomes
// a blocking difference record.
func (c *Comparer) validateAgainstBaseline(oldVal, newVal payload.Value) []differ.Difference {
	inferred := schema.Infer(oldVal)
	if c.opts.StrictSchema {
		schema.EnforceNoAdditionalProperties(inferred)
	}

	if c.validator.Validate(inferred, newVal) {
		return nil
	}

	violations := c.validator.Errors()
	diffs := make([]differ.Difference, 0, len(violations))
	for _, msg := range violations {
		kind := differ.KindSchemaViolation
		if strings.HasPrefix(msg, "Unexpected property") {
			kind = differ.KindAdditionalProperty
		}
		diffs = append(diffs, differ.Difference{
			Path:     violationPath(msg),
			Kind:     kind,
			Message:  msg,
			Severity: differ.SeverityBlocking,
		})
	}
	return diffs
}

// violationPath extracts the instance path from a rendered violation
// message; validator messages end in " at <path>".
func violationPath(msg string) string {
	if idx := strings.LastIndex(msg, " at "); idx >= 0 {
		return msg[idx+len(" at "):]
	}
	return differ.RootPath
}
