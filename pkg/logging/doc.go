// Package logging provides the structured logging facade used across ctconn.
//
// The package wraps Go's standard slog package with a small subsystem-oriented
// API so every component logs the same way.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Flow", "Host %s accepted", host)
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Warn("Validate", "Deliverability check failed, accepting address")
//	logging.Error("Record", err, "Failed to write credential record")
//
// # Subsystems
//
//   - **Config**: configuration loading
//   - **Flow**: credential acquisition state machine
//   - **Validate**: host liveness probe and address deliverability checks
//   - **Session**: authentication handshake
//   - **Record**: persisted credential record
//
// # Audit Logging
//
// Security relevant actions (sign-in attempts, record writes and deletions) are
// emitted through Audit:
//
//	logging.Audit(logging.AuditEvent{
//	    Action:  "login",
//	    Outcome: "success",
//	    Host:    host,
//	    Account: account,
//	})
//
// Audit events are logged at INFO level with an [AUDIT] prefix. They never
// include secret values.
package logging
