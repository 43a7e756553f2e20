package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyMaster     = "master"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTarget     = "target"
	KeyAlias      = "alias"
	KeyTitle      = "title"
	KeyEntries    = "entries"
	KeyRunID      = "run_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Master(m string) slog.Attr       { return slog.String(KeyMaster, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Alias(a string) slog.Attr        { return slog.String(KeyAlias, a) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Entries(n int) slog.Attr         { return slog.Int(KeyEntries, n) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
