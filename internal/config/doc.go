// Package config loads the tool configuration for ucm.
//
// Configuration is read from config.yaml in the current directory or
// the XDG config home, with UCM_-prefixed environment variables taking
// precedence. All values have working defaults; a config file is never
// required.
package config
