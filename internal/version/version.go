package version

// AppVersion is the conch version, overridden at build time with
// -ldflags "-X conch/internal/version.AppVersion=v1.2.3".
var AppVersion = "dev"
