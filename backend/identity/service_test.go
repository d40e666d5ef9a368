package identity

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/benbjohnson/clock"
	_ "modernc.org/sqlite" // Pure Go SQLite driver.

	storedal "github.com/silkmsg/silk/backend/dal"
	identitydal "github.com/silkmsg/silk/backend/identity/dal"
	"github.com/silkmsg/silk/internal/log"
	"github.com/silkmsg/silk/internal/model"
)

func testKey(t *testing.T, b byte) model.IdentityKey {
	t.Helper()
	key, err := model.NewIdentityKey([]byte{0x05, b, b, b})
	assert.NoError(t, err)
	return key
}

func testService(t *testing.T) (context.Context, *Service, *clock.Mock) {
	t.Helper()
	ctx := log.ContextWithNewDefaultLogger(context.Background())
	db, err := sql.Open("sqlite", ":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })
	assert.NoError(t, identitydal.Migrate(ctx, db))

	svc, err := New(ctx, Config{UntrustedInterval: 5 * time.Second}, db)
	assert.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, svc.Close()) })

	mock := clock.NewMock()
	svc.clock = mock
	return ctx, svc, mock
}

func TestSaveIdentityIsIdempotent(t *testing.T) {
	ctx, svc, _ := testService(t)
	accountID := model.NewAccountID()
	key := testKey(t, 1)

	first, event, err := svc.SaveIdentity(ctx, accountID, key)
	assert.NoError(t, err)
	assert.True(t, first.IsFirstKnownKey)
	assert.Equal(t, model.VerificationStateDefault, first.VerificationState)
	assert.False(t, event.Ok())

	second, event, err := svc.SaveIdentity(ctx, accountID, key)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.False(t, event.Ok())
}

func TestSaveIdentityRotationFromVerifiedDowngrades(t *testing.T) {
	ctx, svc, _ := testService(t)
	accountID := model.NewAccountID()

	_, _, err := svc.SaveIdentity(ctx, accountID, testKey(t, 1))
	assert.NoError(t, err)
	_, err = svc.SetVerificationState(ctx, accountID, model.VerificationStateVerified)
	assert.NoError(t, err)

	record, event, err := svc.SaveIdentity(ctx, accountID, testKey(t, 2))
	assert.NoError(t, err)
	assert.False(t, record.IsFirstKnownKey)
	assert.Equal(t, model.VerificationStateNoLongerVerified, record.VerificationState)
	assert.True(t, record.WasIdentityVerified)

	changed, ok := event.Get()
	assert.True(t, ok)
	assert.True(t, changed.Old.IdentityKey.Equal(testKey(t, 1)))
	assert.True(t, changed.New.IdentityKey.Equal(testKey(t, 2)))
}

func TestSaveIdentityRotationFromUnverifiedResets(t *testing.T) {
	for _, state := range []model.VerificationState{
		model.VerificationStateDefault,
		model.VerificationStateDefaultAcknowledged,
	} {
		ctx, svc, _ := testService(t)
		accountID := model.NewAccountID()

		_, _, err := svc.SaveIdentity(ctx, accountID, testKey(t, 1))
		assert.NoError(t, err)
		if state != model.VerificationStateDefault {
			_, err = svc.SetVerificationState(ctx, accountID, state)
			assert.NoError(t, err)
		}

		record, event, err := svc.SaveIdentity(ctx, accountID, testKey(t, 2))
		assert.NoError(t, err)
		assert.Equal(t, model.VerificationStateDefault, record.VerificationState)
		assert.False(t, record.WasIdentityVerified)
		assert.True(t, event.Ok())
	}
}

func TestSaveIdentityRotationFromNoLongerVerifiedResets(t *testing.T) {
	ctx, svc, _ := testService(t)
	accountID := model.NewAccountID()

	// NoLongerVerified is only reachable by rotating away from Verified.
	_, _, err := svc.SaveIdentity(ctx, accountID, testKey(t, 1))
	assert.NoError(t, err)
	_, err = svc.SetVerificationState(ctx, accountID, model.VerificationStateVerified)
	assert.NoError(t, err)
	record, _, err := svc.SaveIdentity(ctx, accountID, testKey(t, 2))
	assert.NoError(t, err)
	assert.Equal(t, model.VerificationStateNoLongerVerified, record.VerificationState)

	// A further rotation resets to Default and clears the verified marker.
	record, event, err := svc.SaveIdentity(ctx, accountID, testKey(t, 3))
	assert.NoError(t, err)
	assert.Equal(t, model.VerificationStateDefault, record.VerificationState)
	assert.False(t, record.WasIdentityVerified)
	assert.True(t, event.Ok())
}

func TestSetVerificationStateValidation(t *testing.T) {
	ctx, svc, _ := testService(t)
	accountID := model.NewAccountID()

	// No record yet.
	_, err := svc.SetVerificationState(ctx, accountID, model.VerificationStateVerified)
	assert.True(t, storedal.IsNotFound(err))

	_, _, err = svc.SaveIdentity(ctx, accountID, testKey(t, 1))
	assert.NoError(t, err)

	// The store owns Default and NoLongerVerified.
	_, err = svc.SetVerificationState(ctx, accountID, model.VerificationStateDefault)
	assert.IsError(t, err, ErrInvalidTransition)
	_, err = svc.SetVerificationState(ctx, accountID, model.VerificationStateNoLongerVerified)
	assert.IsError(t, err, ErrInvalidTransition)
}

func TestEndToEndTrustScenario(t *testing.T) {
	ctx, svc, mock := testService(t)
	accountID := model.NewAccountID()
	keyX := testKey(t, 1)
	keyY := testKey(t, 2)

	// First contact: key X observed at t=0.
	record, _, err := svc.SaveIdentity(ctx, accountID, keyX)
	assert.NoError(t, err)
	assert.True(t, record.IsFirstKnownKey)
	assert.Equal(t, model.VerificationStateDefault, record.VerificationState)
	assert.False(t, svc.IsTrustedIdentity(accountID, keyX)) // inside untrusted interval

	// The user verifies at t=10.
	mock.Add(10 * time.Second)
	record, err = svc.SetVerificationState(ctx, accountID, model.VerificationStateVerified)
	assert.NoError(t, err)
	assert.Equal(t, model.VerificationStateVerified, record.VerificationState)
	assert.True(t, svc.IsTrustedIdentity(accountID, keyX))

	// Key rotates at t=20.
	mock.Add(10 * time.Second)
	record, event, err := svc.SaveIdentity(ctx, accountID, keyY)
	assert.NoError(t, err)
	assert.True(t, event.Ok())
	assert.False(t, record.IsFirstKnownKey)
	assert.Equal(t, model.VerificationStateNoLongerVerified, record.VerificationState)
	assert.False(t, svc.IsTrustedIdentity(accountID, keyY))
	assert.False(t, svc.IsTrustedIdentity(accountID, keyX)) // stale key, never trusted

	// The user acknowledges the new key at t=25.
	mock.Add(5 * time.Second)
	record, err = svc.SetVerificationState(ctx, accountID, model.VerificationStateDefaultAcknowledged)
	assert.NoError(t, err)
	assert.Equal(t, model.VerificationStateDefaultAcknowledged, record.VerificationState)
	assert.True(t, svc.IsTrustedIdentity(accountID, keyY))
}

func TestTrustOnFirstUse(t *testing.T) {
	_, svc, _ := testService(t)
	assert.True(t, svc.IsTrustedIdentity(model.NewAccountID(), testKey(t, 1)))
}

func TestDefaultTrustAfterInterval(t *testing.T) {
	ctx, svc, mock := testService(t)
	accountID := model.NewAccountID()
	key := testKey(t, 1)

	_, _, err := svc.SaveIdentity(ctx, accountID, key)
	assert.NoError(t, err)
	assert.False(t, svc.IsTrustedIdentity(accountID, key))

	mock.Add(5*time.Second - time.Millisecond)
	assert.False(t, svc.IsTrustedIdentity(accountID, key))

	mock.Add(time.Millisecond)
	assert.True(t, svc.IsTrustedIdentity(accountID, key))
}

func TestEventsPublishedAfterCommit(t *testing.T) {
	ctx, svc, _ := testService(t)
	accountID := model.NewAccountID()
	events := svc.Subscribe(make(chan Event, 16))

	_, _, err := svc.SaveIdentity(ctx, accountID, testKey(t, 1))
	assert.NoError(t, err)

	_, err = svc.SetVerificationState(ctx, accountID, model.VerificationStateVerified)
	assert.NoError(t, err)
	stateChanged, ok := waitForEvent(t, events).(VerificationStateChangedEvent)
	assert.True(t, ok)
	assert.Equal(t, model.VerificationStateVerified, stateChanged.Record.VerificationState)

	_, _, err = svc.SaveIdentity(ctx, accountID, testKey(t, 2))
	assert.NoError(t, err)
	keyChanged, ok := waitForEvent(t, events).(KeyChangedEvent)
	assert.True(t, ok)
	assert.Equal(t, accountID, keyChanged.AccountID)
	assert.Equal(t, model.VerificationStateNoLongerVerified, keyChanged.New.VerificationState)
}

func waitForEvent(t *testing.T, events chan Event) Event {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestDeleteIdentity(t *testing.T) {
	ctx, svc, _ := testService(t)
	accountID := model.NewAccountID()

	_, _, err := svc.SaveIdentity(ctx, accountID, testKey(t, 1))
	assert.NoError(t, err)
	assert.True(t, svc.Identity(accountID).Ok())

	assert.NoError(t, svc.DeleteIdentity(ctx, accountID))
	assert.False(t, svc.Identity(accountID).Ok())
	assert.True(t, storedal.IsNotFound(svc.DeleteIdentity(ctx, accountID)))
}

func TestViewSurvivesRestart(t *testing.T) {
	ctx := log.ContextWithNewDefaultLogger(context.Background())
	db, err := sql.Open("sqlite", ":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })
	assert.NoError(t, identitydal.Migrate(ctx, db))

	first, err := New(ctx, Config{UntrustedInterval: 5 * time.Second}, db)
	assert.NoError(t, err)
	accountID := model.NewAccountID()
	record, _, err := first.SaveIdentity(ctx, accountID, testKey(t, 1))
	assert.NoError(t, err)
	assert.NoError(t, first.Close())

	second, err := New(ctx, Config{UntrustedInterval: 5 * time.Second}, db)
	assert.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })
	loaded, ok := second.Identity(accountID).Get()
	assert.True(t, ok)
	assert.Equal(t, record, loaded)
}

func TestConcurrentReadsSeeConsistentRecords(t *testing.T) {
	ctx, svc, _ := testService(t)
	accountID := model.NewAccountID()
	_, _, err := svc.SaveIdentity(ctx, accountID, testKey(t, 1))
	assert.NoError(t, err)

	done := make(chan struct{})
	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				record, ok := svc.Identity(accountID).Get()
				if !ok {
					t.Error("record disappeared during mutation")
					return
				}
				switch record.VerificationState {
				case model.VerificationStateDefault,
					model.VerificationStateVerified,
					model.VerificationStateNoLongerVerified,
					model.VerificationStateDefaultAcknowledged:
				default:
					t.Errorf("observed torn verification state %d", record.VerificationState)
					return
				}
				svc.IsTrustedIdentity(accountID, record.IdentityKey)
			}
		}()
	}

	for i := 0; i < 50; i++ {
		_, err := svc.SetVerificationState(ctx, accountID, model.VerificationStateVerified)
		assert.NoError(t, err)
		_, _, err = svc.SaveIdentity(ctx, accountID, testKey(t, byte(i%250)+2))
		assert.NoError(t, err)
	}
	close(done)
	wg.Wait()
}
