package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAccountRepo is an in-memory AccountRepository.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	clone := *account

	return &clone, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			clone := *account

			return &clone, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return domainerrors.ErrEmailConflict.WrapMessage("email already exists")
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	clone := *account
	r.accounts[account.ID] = &clone

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}

	clone := *account
	r.accounts[account.ID] = &clone

	return nil
}

// fakeTxManager runs the callback directly against the backing repo.
type fakeTxManager struct {
	repo *fakeAccountRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{repo: m.repo})
}

type fakeRepoFactory struct {
	repo *fakeAccountRepo
}

func (f *fakeRepoFactory) AccountRepo() repository.AccountRepository {
	return f.repo
}

// fakeHasher hashes by prefixing, keeping tests fast and assertions readable.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenCodec issues inspectable tokens of the form "type|subject|n".
type fakeTokenCodec struct {
	mu         sync.Mutex
	counter    int
	accessTTL  time.Duration
	refreshTTL time.Duration
	encodeErr  error
}

func newFakeTokenCodec() *fakeTokenCodec {
	return &fakeTokenCodec{
		accessTTL:  15 * time.Minute,
		refreshTTL: 24 * time.Hour,
	}
}

func (c *fakeTokenCodec) Encode(tokenType service.TokenType, _ time.Duration, subject string) (string, error) {
	if c.encodeErr != nil {
		return "", c.encodeErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++

	return fmt.Sprintf("%s|%s|%d", tokenType, subject, c.counter), nil
}

func (c *fakeTokenCodec) Decode(token string) (*service.TokenClaims, error) {
	parts := strings.SplitN(token, "|", 3)
	if len(parts) != 3 {
		return nil, service.ErrTokenMalformed
	}

	return &service.TokenClaims{Type: parts[0]}, nil
}

func (c *fakeTokenCodec) AccessTokenTTL() time.Duration {
	return c.accessTTL
}

func (c *fakeTokenCodec) RefreshTokenTTL() time.Duration {
	return c.refreshTTL
}

// fakeRevocationStore records revocations in memory.
type fakeRevocationStore struct {
	mu        sync.Mutex
	recorded  map[string]time.Duration
	recordErr error
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{recorded: make(map[string]time.Duration)}
}

func (s *fakeRevocationStore) Record(_ context.Context, tokenID string, ttl time.Duration) error {
	if s.recordErr != nil {
		return s.recordErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded[tokenID] = ttl

	return nil
}

func (s *fakeRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.recorded[tokenID]

	return ok, nil
}

// fakeURLSafeCodec hands out opaque handles to stored payloads.
type fakeURLSafeCodec struct {
	mu        sync.Mutex
	counter   int
	payloads  map[string]map[string]string
	decodeErr error
}

func newFakeURLSafeCodec() *fakeURLSafeCodec {
	return &fakeURLSafeCodec{payloads: make(map[string]map[string]string)}
}

func (c *fakeURLSafeCodec) Encode(payload map[string]string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	token := fmt.Sprintf("url-token-%d", c.counter)
	c.payloads[token] = payload

	return token, nil
}

func (c *fakeURLSafeCodec) Decode(token string, _ time.Duration) (map[string]string, error) {
	if c.decodeErr != nil {
		return nil, c.decodeErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.payloads[token]
	if !ok {
		return nil, service.ErrTokenSignatureInvalid
	}

	return payload, nil
}

// fakeMailSender records outbound emails.
type sentEmail struct {
	kind      service.EmailKind
	recipient string
	data      map[string]string
}

type fakeMailSender struct {
	mu      sync.Mutex
	sent    []sentEmail
	sendErr error
}

func (m *fakeMailSender) Send(_ context.Context, kind service.EmailKind, recipient string, data map[string]string) error {
	if m.sendErr != nil {
		return m.sendErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{kind: kind, recipient: recipient, data: data})

	return nil
}
