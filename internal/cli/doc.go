// Package cli provides the terminal front end for ctconn commands.
//
// It contains:
//   - TerminalSource, a flow.Source backed by readline that reads the secret
//     without echo
//   - ProgressReporter, a flow.Reporter that shows a spinner while a host is
//     probed, an address is checked or a login is sent
//   - connection error classification (TLS, DNS, timeout, network) so a
//     failed login says what actually went wrong
//   - Explain and the Format* helpers, which turn errors into the messages
//     printed to the operator
//   - RenderStatus, the table printed by `ctconn status`
package cli
