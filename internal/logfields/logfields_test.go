package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies helper key stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, RunID("abc")},
		{"Root", KeyRoot, Root("docs")},
		{"Path", KeyPath, Path("docs/a.md")},
		{"Op", KeyOp, Op("write")},
		{"Decoding", KeyDecoding, Decoding("lossy")},
		{"Replacements", KeyReplacements, Replacements(2)},
		{"Scanned", KeyScanned, Scanned(10)},
		{"Rewritten", KeyRewritten, Rewritten(1)},
		{"Skipped", KeySkipped, Skipped(0)},
		{"Failures", KeyFailures, Failures(3)},
		{"DurationMS", KeyDurationMS, DurationMS(1.5)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
	}
}

func TestErrorAttr(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Fatalf("nil error should render empty, got %q", got)
	}
	if got := Error(errors.New("permission denied")).Value.String(); got != "permission denied" {
		t.Fatalf("unexpected error value %q", got)
	}
}
