package model

import (
	"database/sql/driver"
	"fmt"
)

// VerificationState is the user's trust decision about an identity key.
type VerificationState int

const (
	// VerificationStateDefault means the user hasn't taken an explicit action
	// on this identity key. It's trusted after the configured untrusted
	// interval has elapsed.
	VerificationStateDefault VerificationState = iota
	// VerificationStateVerified means the user has explicitly verified this
	// identity key. It's trusted.
	VerificationStateVerified
	// VerificationStateNoLongerVerified means the user has explicitly
	// verified a previous identity key. This one will never be trusted based
	// on elapsed time alone; the user must verify or acknowledge it.
	VerificationStateNoLongerVerified
	// VerificationStateDefaultAcknowledged means the user hasn't verified
	// this identity key but has explicitly chosen not to, so the untrusted
	// interval does not apply.
	VerificationStateDefaultAcknowledged
)

// The textual forms are stable and must not change between versions, they
// appear in persisted rows and in logs.
var verificationStateNames = map[VerificationState]string{
	VerificationStateDefault:             "default",
	VerificationStateVerified:            "verified",
	VerificationStateNoLongerVerified:    "no_longer_verified",
	VerificationStateDefaultAcknowledged: "default_acknowledged",
}

func (v VerificationState) String() string {
	if name, ok := verificationStateNames[v]; ok {
		return name
	}
	return fmt.Sprintf("VerificationState(%d)", int(v))
}

func ParseVerificationState(s string) (VerificationState, error) {
	for state, name := range verificationStateNames {
		if name == s {
			return state, nil
		}
	}
	return VerificationStateDefault, fmt.Errorf("invalid verification state %q", s)
}

func (v VerificationState) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *VerificationState) UnmarshalText(text []byte) error {
	state, err := ParseVerificationState(string(text))
	if err != nil {
		return err
	}
	*v = state
	return nil
}

func (v VerificationState) Value() (driver.Value, error) { return v.String(), nil }

func (v *VerificationState) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return v.UnmarshalText([]byte(src))
	default:
		return fmt.Errorf("cannot scan %T into VerificationState", src)
	}
}

// CanExplicitlySet reports whether state is a legal target for an explicit
// user action. Default and NoLongerVerified are only ever entered by the
// store itself, on record creation and key rotation respectively.
func CanExplicitlySet(state VerificationState) bool {
	return state == VerificationStateVerified || state == VerificationStateDefaultAcknowledged
}

// RotatedState returns the verification state a freshly rotated record
// inherits from the record it replaces. A previously verified key downgrades
// to NoLongerVerified so the new key is never silently trusted; anything
// else starts over at Default.
func RotatedState(prev VerificationState) VerificationState {
	if prev == VerificationStateVerified {
		return VerificationStateNoLongerVerified
	}
	return VerificationStateDefault
}
