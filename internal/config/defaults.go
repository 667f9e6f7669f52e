package config

const (
	defaultDataDir              = "~/.local/share/favsync"
	defaultLogDir               = "~/.local/share/favsync/logs"
	defaultProfileDir           = "~/.kodi/userdata"
	defaultScanLockTimeout      = 10
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// defaultFallbackProfiles lists alternate Kodi userdata locations tried after
// the configured profile directory (flatpak sandbox, legacy XBMC).
var defaultFallbackProfiles = []string{
	"~/.var/app/tv.kodi.Kodi/data/userdata",
	"~/.xbmc/userdata",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Source: Source{
			ProfileDir: defaultProfileDir,
		},
		Scan: Scan{
			ProbeMissing: true,
			LockTimeout:  defaultScanLockTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			ScanComplete:   true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
