package validate

import (
	"context"
	"errors"
	"fmt"
	"net"

	emailverifier "github.com/AfterShip/email-verifier"
)

// Verdict classifies an address as judged by a deliverability oracle.
type Verdict int

const (
	// VerdictUnknown means the oracle could not decide, e.g. the provider blocks probing.
	VerdictUnknown Verdict = iota
	// VerdictDeliverable means the address is known to accept mail.
	VerdictDeliverable
	// VerdictRisky means the address probably works but shows warning signs.
	VerdictRisky
	// VerdictInvalid means the address cannot receive mail.
	VerdictInvalid
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictDeliverable:
		return "deliverable"
	case VerdictRisky:
		return "risky"
	case VerdictInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// DeliverabilityChecker judges whether an address can plausibly receive mail.
type DeliverabilityChecker interface {
	CheckDeliverable(ctx context.Context, address string) (Verdict, error)
}

// CheckerFunc adapts a function to DeliverabilityChecker.
type CheckerFunc func(ctx context.Context, address string) (Verdict, error)

// CheckDeliverable calls f.
func (f CheckerFunc) CheckDeliverable(ctx context.Context, address string) (Verdict, error) {
	return f(ctx, address)
}

// Reachability values reported by email-verifier.
const (
	reachableYes = "yes"
	reachableNo  = "no"
)

// EmailVerifier is a blocking DeliverabilityChecker backed by AfterShip's
// email-verifier. SMTP probing is off unless enabled, in which case the
// verifier also talks to the address's mail exchanger.
type EmailVerifier struct {
	verify func(address string) (*emailverifier.Result, error)
}

// NewEmailVerifier creates an EmailVerifier. With smtp set, mailbox-level
// checks are performed in addition to syntax and MX lookups.
func NewEmailVerifier(smtp bool) *EmailVerifier {
	v := emailverifier.NewVerifier()
	if smtp {
		v = v.EnableSMTPCheck()
	}
	return &EmailVerifier{verify: v.Verify}
}

// CheckDeliverable runs the verifier and classifies its result.
func (e *EmailVerifier) CheckDeliverable(ctx context.Context, address string) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return VerdictUnknown, err
	}
	res, err := e.verify(address)
	if err != nil {
		// The MX lookup error is returned as is; a domain that does not
		// exist cannot receive mail.
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return VerdictInvalid, nil
		}
		return VerdictUnknown, fmt.Errorf("failed to verify address: %w", err)
	}
	return classify(res), nil
}

func classify(res *emailverifier.Result) Verdict {
	if res == nil {
		return VerdictUnknown
	}
	if !res.Syntax.Valid {
		return VerdictInvalid
	}
	// Disposable domains are reported before any MX lookup happens.
	if res.Disposable {
		return VerdictRisky
	}
	if !res.HasMxRecords {
		return VerdictInvalid
	}
	switch res.Reachable {
	case reachableNo:
		return VerdictInvalid
	case reachableYes:
		return VerdictDeliverable
	}
	if res.RoleAccount {
		return VerdictRisky
	}
	return VerdictUnknown
}
