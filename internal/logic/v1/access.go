package v1

import "github.com/duynhne/booking-service/internal/core/domain"

// Decision is the outcome of an access check.
type Decision int

const (
	Allow Decision = iota
	Deny
	TargetNotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case TargetNotFound:
		return "target_not_found"
	default:
		return "unknown"
	}
}

// AuthorizeDeleteAccount decides whether principal may delete target.
// A nil target is TargetNotFound whoever asks. Otherwise only the account
// owner is allowed; the admin flag grants nothing here.
func AuthorizeDeleteAccount(principal domain.Principal, target *domain.User) Decision {
	if target == nil {
		return TargetNotFound
	}
	if principal.ID != target.ID {
		return Deny
	}
	return Allow
}
