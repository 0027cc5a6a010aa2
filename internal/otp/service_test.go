package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/davidrendon/identia-backend/internal/database"
	"github.com/davidrendon/identia-backend/internal/events"
	"github.com/davidrendon/identia-backend/internal/models"
	"github.com/davidrendon/identia-backend/internal/store"
)

type stubPublisher struct {
	published []events.Event
}

func (p *stubPublisher) Publish(_ context.Context, evt events.Event) error {
	p.published = append(p.published, evt)
	return nil
}

type stubRevoker struct {
	revoked []string
}

func (r *stubRevoker) Revoke(_ context.Context, email string) error {
	r.revoked = append(r.revoked, email)
	return nil
}

func newTestService(t *testing.T) (*Service, *store.Store, *stubPublisher, *stubRevoker) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db))

	st := store.New(db)
	pub := &stubPublisher{}
	rev := &stubRevoker{}
	return NewService(st, pub, rev, time.Minute, zap.NewNop()), st, pub, rev
}

func TestIssueValidation(t *testing.T) {
	svc, _, pub, _ := newTestService(t)

	_, err := svc.Issue(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Issue(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, pub.published, "validation failures must not reach persistence or events")
}

func TestIssuePublishesCode(t *testing.T) {
	svc, _, pub, _ := newTestService(t)

	rec, err := svc.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", rec.SubjectEmail)
	assert.Len(t, rec.Code, 6)

	require.Len(t, pub.published, 1)
	evt := pub.published[0]
	assert.Equal(t, events.TypeOTPRequested, evt.Type)
	assert.Equal(t, rec.Code, evt.Code)
}

func TestIssueConflictWhileActive(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = svc.Issue(ctx, "a@x.com")
	assert.ErrorIs(t, err, store.ErrActiveOTP)
}

func TestVerifySingleUse(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, "a@x.com", rec.Code)
	require.NoError(t, err)
	assert.True(t, ok)

	// The code is consumed; the same submission now fails.
	ok, err = svc.Verify(ctx, "a@x.com", rec.Code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMismatchIsNegativeNotError(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	wrong := "000000"
	if rec.Code == wrong {
		wrong = "000001"
	}
	ok, err := svc.Verify(ctx, "a@x.com", wrong)
	require.NoError(t, err)
	assert.False(t, ok)

	// The mismatch did not consume the real code.
	ok, err = svc.Verify(ctx, "a@x.com", rec.Code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	ctx := context.Background()

	rec, err := st.CreateOTP(ctx, "a@x.com", "483920", -time.Minute)
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, "a@x.com", rec.Code)
	require.NoError(t, err)
	assert.False(t, ok, "expired codes never verify, even when correct")
}

func TestVerifyValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Verify(context.Background(), "", "123456")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Verify(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVerifyUnknownSubject(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	ok, err := svc.Verify(context.Background(), "nobody@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecoverPassword(t *testing.T) {
	svc, st, pub, rev := newTestService(t)
	ctx := context.Background()

	user := &models.User{Email: "a@x.com", Name: "A"}
	require.NoError(t, user.SetPassword("old-password"))
	require.NoError(t, st.CreateUser(ctx, user))

	rec, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.RecoverPassword(ctx, "a@x.com", rec.Code, "brand-new-pass"))

	got, err := st.UserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("brand-new-pass")))
	assert.Error(t, got.CheckPassword("old-password"))

	assert.Equal(t, []string{"a@x.com"}, rev.revoked)

	types := make([]string, 0, len(pub.published))
	for _, evt := range pub.published {
		types = append(types, evt.Type)
	}
	assert.Contains(t, types, events.TypePasswordChanged)
}

func TestRecoverPasswordInvalidOTP(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	ctx := context.Background()

	user := &models.User{Email: "a@x.com", Name: "A"}
	require.NoError(t, user.SetPassword("old-password"))
	require.NoError(t, st.CreateUser(ctx, user))

	rec, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	wrong := "000000"
	if rec.Code == wrong {
		wrong = "000001"
	}
	err = svc.RecoverPassword(ctx, "a@x.com", wrong, "brand-new-pass")
	assert.ErrorIs(t, err, ErrInvalidOTP)

	got, err := st.UserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NoError(t, got.CheckPassword("old-password"))
}

func TestRecoverPasswordConsumedOTPStaysConsumed(t *testing.T) {
	// No compensation: when the user lookup fails after verification,
	// the consumed OTP is not restored.
	svc, st, _, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Issue(ctx, "ghost@x.com")
	require.NoError(t, err)

	err = svc.RecoverPassword(ctx, "ghost@x.com", rec.Code, "brand-new-pass")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.ActiveOTP(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecoverPasswordValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.RecoverPassword(context.Background(), "a@x.com", "123456", "")
	assert.ErrorIs(t, err, ErrValidation)
}
