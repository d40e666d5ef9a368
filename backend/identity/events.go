package identity

import (
	"github.com/silkmsg/silk/internal/model"
)

// Event is a change to the trust ledger, published after the change has
// committed.
//
//sumtype:decl
type Event interface{ trustEvent() }

// KeyChangedEvent is published when a different identity key replaces the
// stored key for an account. Old is the record the rotation retired.
type KeyChangedEvent struct {
	AccountID model.AccountID
	Old       model.IdentityRecord
	New       model.IdentityRecord
}

func (KeyChangedEvent) trustEvent() {}

// VerificationStateChangedEvent is published on every explicit verification
// decision, so the caller can sync the decision to the user's other devices.
type VerificationStateChangedEvent struct {
	AccountID model.AccountID
	Record    model.IdentityRecord
}

func (VerificationStateChangedEvent) trustEvent() {}
