package version

// Version contains the application version information.
// Set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/adocnav/internal/version.Version=v1.2.0".
var Version = "unknown"
