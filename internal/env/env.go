package env

const AppName = "sigil"

// Set at build time via -ldflags.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
