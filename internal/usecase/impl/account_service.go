// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager  repository.TransactionManager
	hasher     service.PasswordHasher
	urlCodec   service.URLSafeCodec
	mailer     service.MailSender
	urlSafeTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	cfg *config.Config,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	urlCodec service.URLSafeCodec,
	mailer service.MailSender,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager:  txManager,
		hasher:     hasher,
		urlCodec:   urlCodec,
		mailer:     mailer,
		urlSafeTTL: cfg.Token.URLSafeTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account and dispatches a verification email.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterAccountInput) (*entity.Account, error) {
	srv.log(ctx).Info("Registering account", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	account := &entity.Account{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		IsActive:     true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 1. Friendly pre-check. The unique index still backs this up if a
		//    concurrent registration slips between the read and the insert.
		_, err := accountRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailConflict.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check existing email")
		}

		// 2. Persist the account.
		if err := accountRepo.Create(ctx, account); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Verification mail is best effort: a relay outage must not undo the
	// registration the user just completed.
	if err := srv.sendVerificationEmail(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to send verification email",
			slog.Any("error", err),
			slog.String("email", account.Email),
		)
	}

	srv.log(ctx).Info("Account registered", slog.Any("account_id", account.ID))

	return account, nil
}

func (srv *accountService) sendVerificationEmail(ctx context.Context, account *entity.Account) error {
	token, err := srv.urlCodec.Encode(map[string]string{"email": account.Email})
	if err != nil {
		return errors.Wrap(err, "failed to encode verification token")
	}

	return srv.mailer.Send(ctx, service.EmailAccountVerification, account.Email, map[string]string{
		"email": account.Email,
		"name":  account.Name,
		"token": token,
	})
}

// VerifyEmail consumes a url-safe verification token and marks the matching
// account as verified. Codec sentinel errors pass through untouched so the
// delivery layer can map them to the token error taxonomy.
func (srv *accountService) VerifyEmail(ctx context.Context, token string) error {
	payload, err := srv.urlCodec.Decode(token, srv.urlSafeTTL)
	if err != nil {
		return err
	}

	email, ok := payload["email"]
	if !ok || email == "" {
		return domainerrors.ErrInvalidCredentials.WrapMessage("verification token has no email")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account for verification token not found")
			}

			return errors.Wrap(err, "failed to find account")
		}

		// Re-verifying is harmless; keep the original timestamp.
		if account.IsVerified {
			return nil
		}

		now := srv.now()
		account.IsVerified = true
		account.VerifiedAt = &now

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to mark account verified")
		}

		srv.log(ctx).Info("Email verified", slog.Any("account_id", account.ID))

		return nil
	})
}

// ResetPassword changes the password of an authenticated account after
// checking the current one.
func (srv *accountService) ResetPassword(ctx context.Context, accountID uuid.UUID, input usecase.ResetPasswordInput) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account not found")
			}

			return errors.Wrap(err, "failed to find account")
		}

		if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
			return domainerrors.ErrResetPasswordMismatch.WrapMessage("current password does not match")
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash new password")
		}
		account.PasswordHash = hash

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		srv.log(ctx).Info("Password reset", slog.Any("account_id", account.ID))

		return nil
	})
}
