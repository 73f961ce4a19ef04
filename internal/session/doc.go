// Package session performs the single authentication handshake against the
// remote service and holds the resulting signed-in Session.
//
// The handshake is one POST to
//
//	https://{host}/?q=login/ajax?email={account}&password={secret}
//
// The secret is part of the URL. The service defines this contract, so it is
// sent unchanged; URLs written to logs and errors are always redacted with
// RedactedLoginURL.
//
// Success is judged on transport grounds only. Any response, whatever its
// status or body, produces a Session unless ClientConfig.StrictStatus is set.
package session
