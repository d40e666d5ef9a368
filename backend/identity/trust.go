package identity

import (
	"time"

	"github.com/silkmsg/silk/internal/model"
)

// Evaluator produces the trust verdict the encryption layer consults before
// every outbound and inbound operation.
//
// IsTrusted is a pure function of the record and the current time. It has no
// side effects and is safe to call concurrently from any goroutine.
type Evaluator struct {
	// UntrustedInterval is the grace period after a key is first observed
	// during which it is not trusted by default. It closes the window where
	// an attacker could introduce a spoofed key immediately before a
	// time-sensitive message.
	UntrustedInterval time.Duration
}

func (e Evaluator) IsTrusted(record model.IdentityRecord, now time.Time) bool {
	switch record.VerificationState {
	case model.VerificationStateVerified:
		return true
	case model.VerificationStateDefaultAcknowledged:
		// The user explicitly accepted the risk.
		return true
	case model.VerificationStateNoLongerVerified:
		// A previously verified key rotated away. Never trusted until the
		// user re-verifies or acknowledges.
		return false
	case model.VerificationStateDefault:
		return !now.Before(record.CreatedAt.Add(e.UntrustedInterval))
	}
	return false
}
