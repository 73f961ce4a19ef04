// Package flow drives the acquisition of login credentials.
//
// A Flow walks through
//
//	CollectingHost -> CollectingAccount -> CollectingSecret -> Authenticating -> Success
//
// and ends in Exhausted as soon as one field runs out of attempts. Each field
// has its own RetryBudget sized from Options.Retries. A failed login sends the
// flow back to CollectingSecret only; transport failures and rejected
// credentials are not told apart for control flow, both cost one secret
// attempt.
//
// Host and account checks are booleans, so an unreachable host and a host
// that is reachable but is not the expected service look the same.
//
// Direct is a second way in that skips validation and retries entirely. It
// is weaker than a Flow and is meant for values coming from a trusted place
// such as a stored record or a non-interactive invocation.
package flow
