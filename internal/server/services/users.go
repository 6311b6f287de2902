// Package services contains business logic. This file implements
// UserService, which handles registration, login with transparent credential
// hash upgrades, and issuing JWTs.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"github.com/dmitrijs2005/mywallet/internal/logging"
	"github.com/dmitrijs2005/mywallet/internal/server/auth"
	"github.com/dmitrijs2005/mywallet/internal/server/config"
	"github.com/dmitrijs2005/mywallet/internal/server/models"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	maxNameLen     = 100
	maxEmailLen    = 255
	minPasswordLen = 6
)

// CredentialHasher produces and checks stored credential hashes.
type CredentialHasher interface {
	Hash(secret string) (string, error)
	Verify(hash, secret string) (matched bool, needsUpgrade bool, err error)
}

// UserService provides account operations:
// - Register: validate and create users
// - Login: verify credentials, upgrade stale hashes and mint an access token
// - Rename / List
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	hasher                      CredentialHasher
	log                         logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and config.
func NewUserService(m repomanager.RepositoryManager, hasher CredentialHasher, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		repomanager:                 m,
		hasher:                      hasher,
		log:                         log.With("service", "users"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user. The email is trimmed and lower-cased before
// it is checked for uniqueness and stored.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLen)
	}

	repo := s.repomanager.Users()

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", common.ErrDuplicateKey, email)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{ID: uuid.NewString(), Name: name, Email: email, Hash: hash}
	ok, err := repo.Add(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: user was not stored", common.ErrorInternal)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return &user, nil
}

// Login checks the password for email and returns a signed access token.
// Unknown emails and wrong passwords both yield ErrorUnauthorized; a stored
// hash that cannot be parsed yields ErrMalformedCredential. A hash produced
// with a weaker iteration count is replaced on success.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users()

	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("error loading user: %w", err)
	}
	if user == nil {
		return "", common.ErrorUnauthorized
	}

	matched, needsUpgrade, err := s.hasher.Verify(user.Hash, password)
	if err != nil {
		s.log.Error(ctx, "stored credential is malformed", "user_id", user.ID, "error", err)
		return "", err
	}
	if !matched {
		return "", common.ErrorUnauthorized
	}

	if needsUpgrade {
		s.upgradeHash(ctx, user.ID, password)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// Authenticate resolves an access token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.repomanager.Users().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if user == nil {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Rename changes the display name of user id.
func (s *UserService) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}

	ok, err := s.repomanager.Users().Update(ctx, models.User{ID: id, Name: name})
	if err != nil {
		return fmt.Errorf("error renaming user: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

// List returns all users ordered by email.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repomanager.Users().GetAll(ctx)
}

// upgradeHash re-hashes password with the current parameters. Failures are
// logged only; the login they belong to still succeeds.
func (s *UserService) upgradeHash(ctx context.Context, id, password string) {
	hash, err := s.hasher.Hash(password)
	if err == nil {
		var ok bool
		ok, err = s.repomanager.Users().UpdateHash(ctx, id, hash)
		if err == nil && !ok {
			err = errors.New("user vanished")
		}
	}
	if err != nil {
		s.log.Warn(ctx, "credential hash upgrade failed", "user_id", id, "error", err)
		return
	}
	s.log.Info(ctx, "credential hash upgraded", "user_id", id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", common.ErrorValidation, maxNameLen)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if len(email) > maxEmailLen {
		return fmt.Errorf("%w: email exceeds %d characters", common.ErrorValidation, maxEmailLen)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email %q is malformed", common.ErrorValidation, email)
	}
	return nil
}
