// Package config loads the scholarship policy and input settings.
// Defaults reflect the chapter's current bylaws; a YAML file and
// SCTK-prefixed environment variables override them, in that order.
package config
