package validate

import (
	"context"

	"ctconn/pkg/logging"
)

// HostProber reports whether a host is reachable.
type HostProber interface {
	Reachable(ctx context.Context, host string) bool
}

// Validator holds the field predicates used while collecting credentials.
// It keeps no state between calls.
type Validator struct {
	prober  HostProber
	checker DeliverabilityChecker
}

// New creates a Validator.
func New(prober HostProber, checker DeliverabilityChecker) *Validator {
	return &Validator{prober: prober, checker: checker}
}

// HostReachable reports whether candidate answers the liveness probe.
func (v *Validator) HostReachable(ctx context.Context, candidate string) bool {
	return v.prober.Reachable(ctx, candidate)
}

// AddressDeliverable accepts every verdict except VerdictInvalid. Risky and
// unknown addresses pass so that providers which block probing do not lock
// out legitimate accounts. Oracle errors count as unknown.
func (v *Validator) AddressDeliverable(ctx context.Context, candidate string) bool {
	verdict, err := v.checker.CheckDeliverable(ctx, candidate)
	if err != nil {
		logging.Warn("Validate", "Deliverability check failed, treating address as unknown: %v", err)
		return true
	}
	logging.Debug("Validate", "Deliverability verdict for account: %s", verdict)
	return verdict != VerdictInvalid
}
