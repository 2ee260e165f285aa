// Package file loads store configuration from a TOML file.
//
// The file lives at <store root>/config.toml and is optional: a missing
// file yields the built-in defaults, and any field the file does set
// overrides only that field. The loaded configuration is validated
// before use, so a store never starts with values the engine cannot
// operate with.
package file
