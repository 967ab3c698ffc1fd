package version

// Version is the build version of the trading bot.
// It is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/crossover-trader/internal/version.Version=v1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// GetVersion returns the build version.
func GetVersion() string {
	return Version
}

// IsDevelopment reports whether the binary was built without a release version.
func IsDevelopment() bool {
	return Version == "" || Version == "main"
}
