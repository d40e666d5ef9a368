package identity

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/silkmsg/silk/internal/model"
)

func TestEvaluatorTimeGatedDefaultTrust(t *testing.T) {
	evaluator := Evaluator{UntrustedInterval: 5 * time.Second}
	createdAt := time.Unix(1000, 0)
	record, err := model.NewIdentityRecord(model.NewAccountID(), testKey(t, 1), createdAt)
	assert.NoError(t, err)

	assert.False(t, evaluator.IsTrusted(record, createdAt))
	assert.False(t, evaluator.IsTrusted(record, createdAt.Add(5*time.Second-time.Nanosecond)))
	assert.True(t, evaluator.IsTrusted(record, createdAt.Add(5*time.Second)))
	assert.True(t, evaluator.IsTrusted(record, createdAt.Add(time.Hour)))
}

func TestEvaluatorExplicitTrustIgnoresTime(t *testing.T) {
	evaluator := Evaluator{UntrustedInterval: 5 * time.Second}
	createdAt := time.Unix(1000, 0)
	record, err := model.NewIdentityRecord(model.NewAccountID(), testKey(t, 1), createdAt)
	assert.NoError(t, err)

	for _, state := range []model.VerificationState{
		model.VerificationStateVerified,
		model.VerificationStateDefaultAcknowledged,
	} {
		record := record.WithVerificationState(state)
		// Trusted immediately, before the untrusted interval has elapsed.
		assert.True(t, evaluator.IsTrusted(record, createdAt))
		assert.True(t, evaluator.IsTrusted(record, createdAt.Add(time.Hour)))
	}
}

func TestEvaluatorNoLongerVerifiedNeverTrusted(t *testing.T) {
	evaluator := Evaluator{UntrustedInterval: 5 * time.Second}
	createdAt := time.Unix(1000, 0)
	record, err := model.NewIdentityRecord(model.NewAccountID(), testKey(t, 1), createdAt)
	assert.NoError(t, err)
	record.VerificationState = model.VerificationStateNoLongerVerified

	assert.False(t, evaluator.IsTrusted(record, createdAt))
	assert.False(t, evaluator.IsTrusted(record, createdAt.Add(24*time.Hour)))
}
