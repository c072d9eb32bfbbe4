package app

// Options carries the CLI-level settings. Pointer fields are overrides: nil
// means "not given on the command line", so the config file value (or the
// default) stays in effect.
type Options struct {
	ConfigPath string

	Port      *int
	StaticDir *string
	LogLevel  *string
	LogFormat *string
}
