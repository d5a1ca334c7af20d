package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRoute      = "route"
	KeyDurationMS = "duration_ms"
	KeySection    = "section"
	KeyOrdinal    = "ordinal"
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyBuildID    = "build_id"
	KeyHash       = "content_hash"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Route(r string) slog.Attr        { return slog.String(KeyRoute, r) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Ordinal(o string) slog.Attr      { return slog.String(KeyOrdinal, o) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Output(dir string) slog.Attr     { return slog.String(KeyOutput, dir) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Hash(h string) slog.Attr         { return slog.String(KeyHash, h) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
