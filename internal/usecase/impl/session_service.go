package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"
)

const bearerTokenType = "bearer"

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	accountRepo repository.AccountRepository
	codec       service.TokenCodec
	hasher      service.PasswordHasher
	revocations repository.RevocationStore
	logger      *slog.Logger
	now         func() time.Time
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	accountRepo repository.AccountRepository,
	codec service.TokenCodec,
	hasher service.PasswordHasher,
	revocations repository.RevocationStore,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		accountRepo: accountRepo,
		codec:       codec,
		hasher:      hasher,
		revocations: revocations,
		logger:      logger,
		now:         time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credentials and issues a fresh token pair.
// Unknown email, inactive account and a wrong password are indistinguishable
// to the caller so the endpoint cannot be used to probe which emails exist.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*entity.TokenPair, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrIncorrectEmailOrPassword.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	if !account.IsActive {
		return nil, domainerrors.ErrIncorrectEmailOrPassword.WrapMessage("account is inactive")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrIncorrectEmailOrPassword.WrapMessage("password mismatch")
	}

	pair, err := srv.issuePair(account.Email)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("account_id", account.ID))

	return pair, nil
}

// RotateRefreshToken revokes the presented refresh token and issues a fresh
// pair for the same subject. The revocation must land before any new tokens
// are handed out; otherwise the old token would stay replayable.
func (srv *sessionService) RotateRefreshToken(ctx context.Context, claims *service.TokenClaims) (*entity.TokenPair, error) {
	if claims == nil || claims.ExpiresAt == nil {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("refresh claims missing expiry")
	}

	ttl := claims.ExpiresAt.Sub(srv.now())
	if ttl > srv.codec.RefreshTokenTTL() {
		ttl = srv.codec.RefreshTokenTTL()
	}

	if ttl > 0 {
		if err := srv.revocations.Record(ctx, claims.ID, ttl); err != nil {
			return nil, errors.Wrap(err, "failed to revoke refresh token")
		}
	}

	pair, err := srv.issuePair(claims.Subject)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Refresh token rotated", slog.String("subject", claims.Subject))

	return pair, nil
}

func (srv *sessionService) issuePair(subject string) (*entity.TokenPair, error) {
	accessToken, err := srv.codec.Encode(service.TokenTypeAccess, srv.codec.AccessTokenTTL(), subject)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode access token")
	}

	refreshToken, err := srv.codec.Encode(service.TokenTypeRefresh, srv.codec.RefreshTokenTTL(), subject)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode refresh token")
	}

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    bearerTokenType,
	}, nil
}
