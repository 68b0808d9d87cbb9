package types

// Config is the resolved echoctl configuration, merged from config files,
// .env files and environment variables.
type Config struct {
	Schema string `json:"$schema,omitempty"`

	// Domain selects the Alexa endpoint, e.g. "alexa.amazon.com" or
	// "alexa.amazon.de". Defaults to "alexa.amazon.com".
	Domain string `json:"domain,omitempty"`

	// Cookie is the session cookie for the unofficial web API.
	Cookie string `json:"cookie,omitempty"`

	// CSRF is the csrf token matching the cookie.
	CSRF string `json:"csrf,omitempty"`

	// DefaultDevice is the friendly name used when a command is invoked
	// without --device.
	DefaultDevice string `json:"defaultDevice,omitempty"`

	// DeviceCacheTTLSeconds controls how long the on-disk device list is
	// considered fresh. 0 uses the built-in default.
	DeviceCacheTTLSeconds int `json:"deviceCacheTTLSeconds,omitempty"`

	// Preload lists command names resolved eagerly at startup.
	Preload []string `json:"preload,omitempty"`

	LogLevel string `json:"logLevel,omitempty"`
	NoColor  bool   `json:"noColor,omitempty"`
}
