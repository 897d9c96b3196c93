// Package config loads and validates the TOML configuration for the
// conversion client. Configuration resolves from an explicit --config path,
// then ~/.config/pdf2word/config.toml, then a project-local pdf2word.toml,
// falling back to built-in defaults when no file exists.
package config
