// Package record persists the last accepted credentials so later runs can
// skip re-entry.
//
// Persistence is off by default. ModeHostOnly remembers only the host, and
// ModeFull stores host, account and secret in a plain-text YAML file:
//
//	host: a.church.tools
//	account: user@example.com
//	secret: hunter2
//
// A file that cannot be parsed is reported as a ParseError telling the
// operator to delete it and enter the values again. Read and write failures
// are IOErrors.
package record
