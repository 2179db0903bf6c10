package differ

import (
	"fmt"
	"strconv"

	"github.com/mariogalea/qualitymatters-apiveritas/payload"
)

// Compare recursively compares a baseline payload against a candidate and
// returns every detected difference, baseline-key order, depth first.
//
// Both values must already be non-Empty; empty and missing payload handling
// happens one level up in the comparer. The comparison is key-set driven over
// the baseline: keys that exist only in the candidate are not reported here
// (strict-schema validation covers those). Arrays are compared index-keyed,
// so reordered arrays register as mismatches.
//
// pathPrefix is prepended to all reported paths; pass "" when comparing
// payload roots.
func (d *Differ) Compare(oldVal, newVal payload.Value, pathPrefix string) []Difference {
	if oldVal.Kind() != newVal.Kind() {
		return []Difference{{
			Path:     rootPath(pathPrefix),
			Kind:     KindTypeMismatch,
			Message:  fmt.Sprintf("type changed from %s to %s", oldVal.TypeName(), newVal.TypeName()),
			Severity: SeverityBlocking,
		}}
	}

	if !oldVal.IsContainer() {
		// Scalar root: nothing to iterate, compare directly.
		if !oldVal.Equal(newVal) {
			return []Difference{{
				Path:     rootPath(pathPrefix),
				Kind:     KindValueMismatch,
				Message:  fmt.Sprintf("value changed from %s to %s", oldVal, newVal),
				Severity: d.valueSeverity(),
			}}
		}
		return nil
	}

	return d.compareContainer(oldVal, newVal, pathPrefix)
}

// compareContainer walks an object or array pair of identical kind.
// Differences of descendants are flattened into one sequence.
func (d *Differ) compareContainer(oldVal, newVal payload.Value, path string) []Difference {
	var diffs []Difference

	if oldVal.Kind() == payload.KindObject {
		for _, key := range oldVal.Keys() {
			oldField, _ := oldVal.Field(key)
			newField, ok := newVal.Field(key)
			if !ok {
				diffs = append(diffs, Difference{
					Path:     joinPath(path, key),
					Kind:     KindMissingKey,
					Message:  fmt.Sprintf("key %q is missing (baseline value %s)", key, oldField),
					Severity: SeverityBlocking,
				})
				continue
			}
			diffs = append(diffs, d.compareField(oldField, newField, joinPath(path, key))...)
		}
		return diffs
	}

	// Array: index-keyed object iteration over the baseline's indexes.
	for i := 0; i < oldVal.Len(); i++ {
		key := strconv.Itoa(i)
		oldElem := oldVal.Index(i)
		if i >= newVal.Len() {
			diffs = append(diffs, Difference{
				Path:     joinPath(path, key),
				Kind:     KindMissingKey,
				Message:  fmt.Sprintf("index %d is missing (baseline value %s)", i, oldElem),
				Severity: SeverityBlocking,
			})
			continue
		}
		diffs = append(diffs, d.compareField(oldElem, newVal.Index(i), joinPath(path, key))...)
	}
	return diffs
}

// compareField compares a single key's values once presence is established.
func (d *Differ) compareField(oldField, newField payload.Value, path string) []Difference {
	if oldField.Kind() != newField.Kind() {
		return []Difference{{
			Path:     path,
			Kind:     KindTypeMismatch,
			Message:  fmt.Sprintf("type changed from %s to %s", oldField.TypeName(), newField.TypeName()),
			Severity: SeverityBlocking,
		}}
	}

	if oldField.IsContainer() {
		return d.compareContainer(oldField, newField, path)
	}

	if !oldField.Equal(newField) {
		return []Difference{{
			Path:     path,
			Kind:     KindValueMismatch,
			Message:  fmt.Sprintf("value changed from %s to %s", oldField, newField),
			Severity: d.valueSeverity(),
		}}
	}

	return nil
}

func (d *Differ) valueSeverity() Severity {
	if d.StrictValues {
		return SeverityBlocking
	}
	return SeverityInformational
}

// joinPath appends a key to a dot-delimited path prefix.
func joinPath(prefix, key string) string {
	if prefix == "" || prefix == RootPath {
		return key
	}
	return prefix + "." + key
}

// rootPath normalizes an empty prefix to the root marker.
func rootPath(prefix string) string {
	if prefix == "" {
		return RootPath
	}
	return prefix
}
