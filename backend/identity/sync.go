package identity

import (
	"crypto/rand"
	"fmt"

	"go.mau.fi/libsignal/ecc"
	"google.golang.org/protobuf/proto"

	syncv1 "github.com/silkmsg/silk/backend/protos/silk/sync/v1"
	"github.com/silkmsg/silk/internal/model"
)

// BuildVerifiedSync packages a verification decision for delivery to the
// user's other devices. paddingLength bytes of random padding are appended
// so the payload size does not reveal which state was sent.
//
// Pure, no I/O. Structurally invalid input (empty or malformed key, zero
// account id, negative padding) is refused with an error; callers log and
// drop the message rather than sending a malformed payload.
func BuildVerifiedSync(accountID model.AccountID, key model.IdentityKey, state model.VerificationState, paddingLength int) (*syncv1.Verified, error) {
	if accountID.IsZero() {
		return nil, fmt.Errorf("verified sync requires an account id")
	}
	if key.IsZero() {
		return nil, fmt.Errorf("verified sync requires an identity key")
	}
	keyBytes := key.Bytes()
	if _, err := ecc.DecodePoint(keyBytes, 0); err != nil {
		return nil, fmt.Errorf("malformed identity key for %s: %w", accountID, err)
	}
	if paddingLength < 0 {
		return nil, fmt.Errorf("padding length must not be negative")
	}
	padding := make([]byte, paddingLength)
	if _, err := rand.Read(padding); err != nil {
		return nil, fmt.Errorf("failed to generate padding: %w", err)
	}
	return &syncv1.Verified{
		DestinationAci: accountID.String(),
		IdentityKey:    keyBytes,
		State:          syncState(state),
		NullPadding:    padding,
	}, nil
}

// MarshalVerifiedSync serializes the payload for the transport layer.
func MarshalVerifiedSync(verified *syncv1.Verified) ([]byte, error) {
	data, err := proto.Marshal(verified)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verified sync: %w", err)
	}
	return data, nil
}

// syncState maps ledger states onto the wire enum. NoLongerVerified is a
// local-only state; on the wire it degrades to the default state, the
// receiving device re-derives it from its own ledger.
func syncState(state model.VerificationState) syncv1.Verified_State {
	switch state {
	case model.VerificationStateVerified:
		return syncv1.Verified_STATE_VERIFIED
	case model.VerificationStateDefaultAcknowledged:
		return syncv1.Verified_STATE_UNVERIFIED
	default:
		return syncv1.Verified_STATE_DEFAULT
	}
}
