// Package validate implements the stateless field checks applied to
// credential candidates: host liveness and address deliverability.
//
// Both checks collapse to a boolean, so a host that is reachable but runs the
// wrong service, and a host that failed because of a transient network error,
// look the same to the caller.
package validate
