// Package config provides configuration management for ctconn.
//
// Configuration is read from config.yaml in a single directory. The default
// directory is ~/.config/ctconn; commands accept --config-path to use another.
// A missing file is not an error: the defaults below apply.
//
//	retries: 3            # attempts per field, 0 for unbounded
//	persistence: off      # off, host or full
//	recordFile: ~/.config/ctconn/credentials.yaml
//	logLevel: info
//	httpTimeout: 0s
//	strictStatus: false
//	verifySMTP: false
//
// Command-line flags override file values.
//
// SECURITY: persistence "full" stores the secret in plain text in recordFile.
package config
