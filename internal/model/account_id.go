package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// AccountID is the stable identifier of a conversation partner's account.
//
// It survives profile and phone-number changes, and is the key under which
// identity records are stored. The wire form is a UUID string.
type AccountID struct {
	id uuid.UUID
}

func NewAccountID() AccountID {
	return AccountID{id: uuid.New()}
}

func ParseAccountID(s string) (AccountID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid account id %q: %w", s, err)
	}
	return AccountID{id: id}, nil
}

func (a AccountID) IsZero() bool   { return a.id == uuid.UUID{} }
func (a AccountID) String() string { return a.id.String() }

func (a AccountID) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AccountID) UnmarshalText(text []byte) error {
	id, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

func (a AccountID) Value() (driver.Value, error) { return a.String(), nil }

func (a *AccountID) Scan(src any) error {
	switch src := src.(type) {
	case string:
		id, err := ParseAccountID(src)
		if err != nil {
			return err
		}
		*a = id
		return nil
	default:
		return fmt.Errorf("cannot scan %T into AccountID", src)
	}
}
