package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		want     string
	}{
		{name: "blocking", severity: SeverityBlocking, want: "blocking"},
		{name: "informational", severity: SeverityInformational, want: "informational"},
		{name: "unknown value", severity: Severity(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.String())
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	// Blocking sorts before informational; the comparer relies on this
	// when ordering differences within a file result.
	assert.Less(t, int(SeverityBlocking), int(SeverityInformational))
}
