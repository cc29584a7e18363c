package tui

// Options configures TUI startup behavior.
type Options struct {
	// ConfigPath overrides the config file location, like PLANBOOK_CONFIG.
	ConfigPath string
}
