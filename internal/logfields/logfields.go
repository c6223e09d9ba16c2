package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID        = "run_id"
	KeyRoot         = "root"
	KeyPath         = "path"
	KeyOp           = "op"
	KeyDecoding     = "decoding"
	KeyReplacements = "replacements"
	KeyScanned      = "files_scanned"
	KeyRewritten    = "files_rewritten"
	KeySkipped      = "files_skipped"
	KeyFailures     = "failures"
	KeyDurationMS   = "duration_ms"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Op(op string) slog.Attr          { return slog.String(KeyOp, op) }
func Decoding(m string) slog.Attr     { return slog.String(KeyDecoding, m) }
func Replacements(n int) slog.Attr    { return slog.Int(KeyReplacements, n) }
func Scanned(n int) slog.Attr         { return slog.Int(KeyScanned, n) }
func Rewritten(n int) slog.Attr       { return slog.Int(KeyRewritten, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func Failures(n int) slog.Attr        { return slog.Int(KeyFailures, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
