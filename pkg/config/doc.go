// Package config loads default settings for the attrkit CLI from the
// environment. Command line flags take precedence over these values.
package config
