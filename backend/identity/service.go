// Package identity is the trust ledger for conversation partners' identity
// keys: which key each account currently uses, the user's verification
// decision about it, and whether the encryption layer should trust it right
// now.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alecthomas/atomic"
	"github.com/alecthomas/kong"
	"github.com/alecthomas/types/optional"
	"github.com/alecthomas/types/pubsub"
	"github.com/benbjohnson/clock"

	"github.com/silkmsg/silk/backend/identity/dal"
	"github.com/silkmsg/silk/internal/log"
	"github.com/silkmsg/silk/internal/model"
)

// ErrInvalidTransition is returned when a caller asks for a verification
// state that is not a legal explicit target.
var ErrInvalidTransition = errors.New("invalid verification state transition")

type Config struct {
	UntrustedInterval time.Duration `help:"Grace period before an unverified identity key is trusted by default." default:"5s" env:"SILK_UNTRUSTED_INTERVAL"`
}

func (c *Config) SetDefaults() {
	if err := kong.ApplyDefaults(c); err != nil {
		panic(err)
	}
}

// Service owns the identity records. It guarantees one active record per
// account, detects key rotation on save, and publishes change events after
// the corresponding transaction has committed.
//
// Mutations run inside a write transaction; trust verdicts and record reads
// are served wait-free from an immutable in-memory snapshot that is swapped
// atomically after each commit, so readers never observe a torn record.
type Service struct {
	config    Config
	dal       *dal.DAL
	clock     clock.Clock
	evaluator Evaluator
	topic     *pubsub.Topic[Event]

	writeMu sync.Mutex
	view    *atomic.Value[map[model.AccountID]model.IdentityRecord]
}

func New(ctx context.Context, config Config, conn *sql.DB) (*Service, error) {
	config.SetDefaults()
	svc := &Service{
		config:    config,
		dal:       dal.New(conn),
		clock:     clock.New(),
		evaluator: Evaluator{UntrustedInterval: config.UntrustedInterval},
		topic:     pubsub.New[Event](),
		view:      atomic.New(map[model.AccountID]model.IdentityRecord{}),
	}
	records, err := svc.dal.ListIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity records: %w", err)
	}
	view := make(map[model.AccountID]model.IdentityRecord, len(records))
	for _, record := range records {
		view[record.AccountID] = record
	}
	svc.view.Store(view)
	log.FromContext(ctx).Scope("identity").Debugf("Loaded %d identity records", len(records))
	return svc, nil
}

func (s *Service) Close() error {
	return s.topic.Close()
}

// Evaluator returns the trust evaluator configured for this service.
func (s *Service) Evaluator() Evaluator { return s.evaluator }

// now returns the current time normalized to what the storage layer can
// round-trip, so records compare equal before and after a reload.
func (s *Service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

// Subscribe registers a channel to receive trust-ledger events.
func (s *Service) Subscribe(ch chan Event) chan Event { return s.topic.Subscribe(ch) }

// Identity returns the active record for an account from the in-memory
// snapshot. Wait-free.
func (s *Service) Identity(accountID model.AccountID) optional.Option[model.IdentityRecord] {
	record, ok := s.view.Load()[accountID]
	if !ok {
		return optional.None[model.IdentityRecord]()
	}
	return optional.Some(record)
}

// IsTrustedIdentity is the check the encryption layer performs before every
// send and receive. Wait-free.
//
// An account with no stored record is trusted on first use; a key that
// differs from the stored one is never trusted; otherwise the verdict is the
// evaluator's.
func (s *Service) IsTrustedIdentity(accountID model.AccountID, key model.IdentityKey) bool {
	record, ok := s.view.Load()[accountID]
	if !ok {
		return true
	}
	if !record.IdentityKey.Equal(key) {
		return false
	}
	return s.evaluator.IsTrusted(record, s.clock.Now())
}

// SaveIdentity records an observed identity key for an account.
//
// Saving the key already on record is a no-op and returns the existing
// record. The first key for an account creates a record in the Default
// state. A differing key replaces the record per the rotation rule and
// returns a KeyChangedEvent, which is also published to subscribers; the row
// replacement and the event always commit together.
func (s *Service) SaveIdentity(ctx context.Context, accountID model.AccountID, key model.IdentityKey) (model.IdentityRecord, optional.Option[KeyChangedEvent], error) {
	logger := log.FromContext(ctx).Scope("identity")
	none := optional.None[KeyChangedEvent]()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	record, event, err := s.saveIdentity(ctx, accountID, key)
	if err != nil {
		return model.IdentityRecord{}, none, err
	}
	s.storeInView(record)
	if changed, ok := event.Get(); ok {
		logger.Warnf("Identity key for %s rotated (%s -> %s), state %s",
			accountID, changed.Old.IdentityKey, changed.New.IdentityKey, changed.New.VerificationState)
		s.topic.Publish(changed)
	}
	return record, event, nil
}

func (s *Service) saveIdentity(ctx context.Context, accountID model.AccountID, key model.IdentityKey) (record model.IdentityRecord, event optional.Option[KeyChangedEvent], err error) {
	none := optional.None[KeyChangedEvent]()
	tx, err := s.dal.Begin(ctx)
	if err != nil {
		return model.IdentityRecord{}, none, err
	}
	defer tx.CommitOrRollback(ctx, &err)

	existing, err := tx.GetIdentity(ctx, accountID)
	switch {
	case dal.IsNotFound(err):
		record, err = model.NewIdentityRecord(accountID, key, s.now())
		if err != nil {
			return model.IdentityRecord{}, none, err
		}
		if err = tx.CreateIdentity(ctx, record); err != nil {
			return model.IdentityRecord{}, none, err
		}
		return record, none, nil

	case err != nil:
		return model.IdentityRecord{}, none, err

	case existing.IdentityKey.Equal(key):
		return existing, none, nil

	default:
		record, err = existing.Rotated(key, s.now())
		if err != nil {
			return model.IdentityRecord{}, none, err
		}
		if err = tx.ReplaceIdentity(ctx, record); err != nil {
			return model.IdentityRecord{}, none, err
		}
		return record, optional.Some(KeyChangedEvent{AccountID: accountID, Old: existing, New: record}), nil
	}
}

// SetVerificationState applies an explicit user decision to an existing
// record. Only Verified and DefaultAcknowledged are legal targets; the
// store itself owns the other two states. Returns dal.ErrNotFound if no
// record exists for the account.
func (s *Service) SetVerificationState(ctx context.Context, accountID model.AccountID, state model.VerificationState) (model.IdentityRecord, error) {
	logger := log.FromContext(ctx).Scope("identity")
	if !model.CanExplicitlySet(state) {
		return model.IdentityRecord{}, fmt.Errorf("%w: %s is not an explicit user decision", ErrInvalidTransition, state)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	record, err := s.setVerificationState(ctx, accountID, state)
	if err != nil {
		return model.IdentityRecord{}, err
	}
	s.storeInView(record)
	logger.Infof("Verification state for %s is now %s", accountID, record.VerificationState)
	s.topic.Publish(VerificationStateChangedEvent{AccountID: accountID, Record: record})
	return record, nil
}

func (s *Service) setVerificationState(ctx context.Context, accountID model.AccountID, state model.VerificationState) (record model.IdentityRecord, err error) {
	tx, err := s.dal.Begin(ctx)
	if err != nil {
		return model.IdentityRecord{}, err
	}
	defer tx.CommitOrRollback(ctx, &err)

	existing, err := tx.GetIdentity(ctx, accountID)
	if err != nil {
		return model.IdentityRecord{}, err
	}
	record = existing.WithVerificationState(state)
	if err = tx.UpdateVerificationState(ctx, accountID, record.VerificationState, record.WasIdentityVerified); err != nil {
		return model.IdentityRecord{}, err
	}
	return record, nil
}

// DeleteIdentity removes an account's record as part of whole-account
// deletion.
func (s *Service) DeleteIdentity(ctx context.Context, accountID model.AccountID) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.dal.DeleteIdentity(ctx, accountID); err != nil {
		return err
	}
	view := s.view.Load()
	next := make(map[model.AccountID]model.IdentityRecord, len(view))
	for id, record := range view {
		if id != accountID {
			next[id] = record
		}
	}
	s.view.Store(next)
	return nil
}

// AllIdentities enumerates every stored record for operator-facing
// diagnostics. Read-only; not part of the trust-decision path.
func (s *Service) AllIdentities(ctx context.Context) ([]model.IdentityRecord, error) {
	return s.dal.ListIdentities(ctx)
}

// DebugDumpIdentities logs every stored record at debug level.
func (s *Service) DebugDumpIdentities(ctx context.Context) error {
	logger := log.FromContext(ctx).Scope("identity")
	records, err := s.AllIdentities(ctx)
	if err != nil {
		return err
	}
	logger.Debugf("Dumping %d identity records", len(records))
	for _, record := range records {
		logger.Debugf("%s: key=%s created=%s first=%t state=%s wasVerified=%t",
			record.AccountID, record.IdentityKey, record.CreatedAt.Format(time.RFC3339),
			record.IsFirstKnownKey, record.VerificationState, record.WasIdentityVerified)
	}
	return nil
}

// storeInView swaps in a new immutable snapshot containing the record.
// Callers must hold writeMu.
func (s *Service) storeInView(record model.IdentityRecord) {
	view := s.view.Load()
	next := make(map[model.AccountID]model.IdentityRecord, len(view)+1)
	for id, r := range view {
		next[id] = r
	}
	next[record.AccountID] = record
	s.view.Store(next)
}
