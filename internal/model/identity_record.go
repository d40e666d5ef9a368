package model

import (
	"fmt"
	"time"
)

// IdentityRecord is the persisted fact about one conversation partner: the
// identity key currently associated with the account, when it was first
// observed, and the user's verification decision about it.
//
// Records are immutable values. The key never changes in place, a rotation
// replaces the whole record via Rotated. Verification-state changes produce
// a copy via WithVerificationState.
type IdentityRecord struct {
	AccountID         AccountID
	IdentityKey       IdentityKey
	CreatedAt         time.Time
	IsFirstKnownKey   bool
	VerificationState VerificationState
	// WasIdentityVerified is true if this record, or the record it replaced,
	// was explicitly verified by the user. Stored rather than derived so the
	// signal survives a reload from disk.
	WasIdentityVerified bool
}

// NewIdentityRecord creates the first record ever stored for an account.
func NewIdentityRecord(accountID AccountID, key IdentityKey, createdAt time.Time) (IdentityRecord, error) {
	if accountID.IsZero() {
		return IdentityRecord{}, fmt.Errorf("identity record requires an account id")
	}
	if key.IsZero() {
		return IdentityRecord{}, fmt.Errorf("identity record requires an identity key")
	}
	if createdAt.IsZero() {
		return IdentityRecord{}, fmt.Errorf("identity record requires a creation time")
	}
	return IdentityRecord{
		AccountID:         accountID,
		IdentityKey:       key,
		CreatedAt:         createdAt,
		IsFirstKnownKey:   true,
		VerificationState: VerificationStateDefault,
	}, nil
}

// Rotated returns the successor record created when a different key is
// observed for the same account.
func (r IdentityRecord) Rotated(key IdentityKey, now time.Time) (IdentityRecord, error) {
	if key.IsZero() {
		return IdentityRecord{}, fmt.Errorf("identity record requires an identity key")
	}
	if key.Equal(r.IdentityKey) {
		return IdentityRecord{}, fmt.Errorf("rotation requires a different identity key")
	}
	return IdentityRecord{
		AccountID:           r.AccountID,
		IdentityKey:         key,
		CreatedAt:           now,
		IsFirstKnownKey:     false,
		VerificationState:   RotatedState(r.VerificationState),
		WasIdentityVerified: r.VerificationState == VerificationStateVerified,
	}, nil
}

// WithVerificationState returns a copy of the record with the verification
// state replaced by an explicit user decision.
func (r IdentityRecord) WithVerificationState(state VerificationState) IdentityRecord {
	r.VerificationState = state
	if state == VerificationStateVerified {
		r.WasIdentityVerified = true
	}
	return r
}
