package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/usecase"
)

type accountServiceFixture struct {
	svc      usecase.AccountUsecase
	repo     *fakeAccountRepo
	urlCodec *fakeURLSafeCodec
	mailer   *fakeMailSender
}

func newAccountServiceFixture() *accountServiceFixture {
	repo := newFakeAccountRepo()
	urlCodec := newFakeURLSafeCodec()
	mailer := &fakeMailSender{}

	cfg := &config.Config{}
	cfg.Token = config.TokenConfig{URLSafeTTL: time.Hour}

	svc := NewAccountService(cfg, &fakeTxManager{repo: repo}, fakeHasher{}, urlCodec, mailer, discardLogger())

	return &accountServiceFixture{svc: svc, repo: repo, urlCodec: urlCodec, mailer: mailer}
}

func (f *accountServiceFixture) seedAccount(t *testing.T, email, password string) *entity.Account {
	t.Helper()

	account := &entity.Account{
		Email:        email,
		PasswordHash: "hashed:" + password,
		Name:         "Seeded",
		IsActive:     true,
	}
	require.NoError(t, f.repo.Create(context.Background(), account))

	return account
}

func TestAccountService_Register_Success(t *testing.T) {
	f := newAccountServiceFixture()

	account, err := f.svc.Register(context.Background(), usecase.RegisterAccountInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.Equal(t, "hashed:password123", account.PasswordHash)
	assert.True(t, account.IsActive)
	assert.False(t, account.IsVerified)

	require.Len(t, f.mailer.sent, 1)
	sent := f.mailer.sent[0]
	assert.Equal(t, service.EmailAccountVerification, sent.kind)
	assert.Equal(t, "alice@example.com", sent.recipient)
	assert.NotEmpty(t, sent.data["token"])
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	f := newAccountServiceFixture()
	f.seedAccount(t, "alice@example.com", "password123")

	_, err := f.svc.Register(context.Background(), usecase.RegisterAccountInput{
		Name:     "Other Alice",
		Email:    "alice@example.com",
		Password: "password456",
	})

	assert.ErrorIs(t, err, domainerrors.ErrEmailConflict)
	assert.Empty(t, f.mailer.sent)
}

func TestAccountService_Register_MailFailureKeepsAccount(t *testing.T) {
	f := newAccountServiceFixture()
	f.mailer.sendErr = assert.AnError

	account, err := f.svc.Register(context.Background(), usecase.RegisterAccountInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)

	stored, err := f.repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, stored.ID)
}

func TestAccountService_VerifyEmail_Success(t *testing.T) {
	f := newAccountServiceFixture()
	account := f.seedAccount(t, "alice@example.com", "password123")

	token, err := f.urlCodec.Encode(map[string]string{"email": account.Email})
	require.NoError(t, err)

	require.NoError(t, f.svc.VerifyEmail(context.Background(), token))

	stored, err := f.repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	require.NotNil(t, stored.VerifiedAt)
	assert.WithinDuration(t, time.Now(), *stored.VerifiedAt, 5*time.Second)
}

func TestAccountService_VerifyEmail_AlreadyVerified(t *testing.T) {
	f := newAccountServiceFixture()
	account := f.seedAccount(t, "alice@example.com", "password123")

	verifiedAt := time.Now().Add(-time.Hour)
	account.IsVerified = true
	account.VerifiedAt = &verifiedAt
	require.NoError(t, f.repo.Update(context.Background(), account))

	token, err := f.urlCodec.Encode(map[string]string{"email": account.Email})
	require.NoError(t, err)

	require.NoError(t, f.svc.VerifyEmail(context.Background(), token))

	stored, err := f.repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.VerifiedAt)
	assert.WithinDuration(t, verifiedAt, *stored.VerifiedAt, time.Second)
}

func TestAccountService_VerifyEmail_UnknownAccount(t *testing.T) {
	f := newAccountServiceFixture()

	token, err := f.urlCodec.Encode(map[string]string{"email": "ghost@example.com"})
	require.NoError(t, err)

	err = f.svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAccountService_VerifyEmail_CodecErrorsPassThrough(t *testing.T) {
	f := newAccountServiceFixture()
	f.urlCodec.decodeErr = service.ErrTokenExpired

	err := f.svc.VerifyEmail(context.Background(), "whatever")
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestAccountService_VerifyEmail_MissingEmailClaim(t *testing.T) {
	f := newAccountServiceFixture()

	token, err := f.urlCodec.Encode(map[string]string{"name": "no email here"})
	require.NoError(t, err)

	err = f.svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_ResetPassword_Success(t *testing.T) {
	f := newAccountServiceFixture()
	account := f.seedAccount(t, "alice@example.com", "oldpassword")

	err := f.svc.ResetPassword(context.Background(), account.ID, usecase.ResetPasswordInput{
		CurrentPassword: "oldpassword",
		NewPassword:     "newpassword",
	})
	require.NoError(t, err)

	stored, err := f.repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:newpassword", stored.PasswordHash)
}

func TestAccountService_ResetPassword_WrongCurrentPassword(t *testing.T) {
	f := newAccountServiceFixture()
	account := f.seedAccount(t, "alice@example.com", "oldpassword")

	err := f.svc.ResetPassword(context.Background(), account.ID, usecase.ResetPasswordInput{
		CurrentPassword: "not the password",
		NewPassword:     "newpassword",
	})
	assert.ErrorIs(t, err, domainerrors.ErrResetPasswordMismatch)

	stored, err := f.repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:oldpassword", stored.PasswordHash)
}

func TestAccountService_ResetPassword_UnknownAccount(t *testing.T) {
	f := newAccountServiceFixture()

	err := f.svc.ResetPassword(context.Background(), uuid.New(), usecase.ResetPasswordInput{
		CurrentPassword: "whatever",
		NewPassword:     "newpassword",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}
