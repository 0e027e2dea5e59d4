package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Extensions:      nil, // scan every file type
		ExcludePatterns: nil,
		MinSize:         "", // no minimum size
		Output:          "", // write the report to stdout
		Format:          "text",
		Quiet:           false,
		LogLevel:        "warn",
		NoColor:         false,
	}
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# dupfind Configuration File
# Location: ~/.config/dupfind/config.yaml

# Restrict scanning to these extensions. Leave empty to scan everything.
# The leading dot is optional and matching ignores case.
extensions: []
#  - ".jpg"
#  - ".png"
#  - "mp4"

# Skip files and directories whose name matches any of these glob
# patterns, e.g. ".git" or "*.tmp".
exclude_patterns: []
#  - ".git"
#  - "node_modules"
#  - "*.tmp"

# Skip duplicate candidates smaller than this. Accepts human-readable
# sizes like "1KB" or "10MiB". Leave empty for no minimum.
min_size: ""

# Default path for the report. Leave empty to print to stdout.
# The report file itself is always excluded from the scan.
output: ""

# Report format: "text" or "json"
format: "text"

# Suppress progress output
quiet: false

# Log verbosity: debug, info, warn, error
log_level: "warn"

# Disable colored log output
no_color: false
`
}
