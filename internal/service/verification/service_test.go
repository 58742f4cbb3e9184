package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfade/IFS-BookingService/internal/infra/codestore"
	"github.com/inkfade/IFS-BookingService/internal/integrations/notifyservice"
)

type fakeCodeStore struct {
	codes   map[string]string
	putErr  error
	takeErr error
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (f *fakeCodeStore) Put(_ context.Context, userID, code string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.codes[userID] = code
	return nil
}

func (f *fakeCodeStore) Take(_ context.Context, userID string) (string, error) {
	if f.takeErr != nil {
		return "", f.takeErr
	}
	code, ok := f.codes[userID]
	if !ok {
		return "", codestore.ErrCodeNotFound
	}
	delete(f.codes, userID)
	return code, nil
}

type fakeNotifyClient struct {
	err  error
	sent []notifyservice.VerificationMessage
}

func (f *fakeNotifyClient) SendVerificationCode(_ context.Context, m notifyservice.VerificationMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestRequestCode_SendsGeneratedCode(t *testing.T) {
	store := newFakeCodeStore()
	notify := &fakeNotifyClient{}
	svc := NewService(store, notify, 5*time.Minute, noopLogger{})

	err := svc.RequestCode(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, notify.sent, 1)
	assert.Equal(t, "user-1", notify.sent[0].RecipientID)
	assert.Len(t, notify.sent[0].Code, 6)
	assert.Equal(t, 300, notify.sent[0].TTLSeconds)

	// Отправленный код совпадает с сохраненным
	assert.Equal(t, store.codes["user-1"], notify.sent[0].Code)
}

func TestRequestCode_EmptyUser(t *testing.T) {
	svc := NewService(newFakeCodeStore(), &fakeNotifyClient{}, time.Minute, noopLogger{})

	err := svc.RequestCode(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRequestCode_NotifyFailure(t *testing.T) {
	notify := &fakeNotifyClient{err: errors.New("notify service down")}
	svc := NewService(newFakeCodeStore(), notify, time.Minute, noopLogger{})

	err := svc.RequestCode(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestVerifyCode_Success(t *testing.T) {
	store := newFakeCodeStore()
	store.codes["user-1"] = "483920"
	svc := NewService(store, &fakeNotifyClient{}, time.Minute, noopLogger{})

	err := svc.VerifyCode(context.Background(), "user-1", "483920")
	assert.NoError(t, err)
}

func TestVerifyCode_IsSingleUse(t *testing.T) {
	store := newFakeCodeStore()
	store.codes["user-1"] = "483920"
	svc := NewService(store, &fakeNotifyClient{}, time.Minute, noopLogger{})

	require.NoError(t, svc.VerifyCode(context.Background(), "user-1", "483920"))

	err := svc.VerifyCode(context.Background(), "user-1", "483920")
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestVerifyCode_Mismatch(t *testing.T) {
	store := newFakeCodeStore()
	store.codes["user-1"] = "483920"
	svc := NewService(store, &fakeNotifyClient{}, time.Minute, noopLogger{})

	err := svc.VerifyCode(context.Background(), "user-1", "000000")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// Неверная попытка тоже инвалидирует код
	err = svc.VerifyCode(context.Background(), "user-1", "483920")
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestVerifyCode_NoActiveCode(t *testing.T) {
	svc := NewService(newFakeCodeStore(), &fakeNotifyClient{}, time.Minute, noopLogger{})

	err := svc.VerifyCode(context.Background(), "user-1", "483920")
	assert.ErrorIs(t, err, ErrCodeMismatch)
}
