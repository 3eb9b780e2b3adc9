package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// AuthService implements registration, login, logout and password changes.
// Sessions are server-side records keyed by a random id; the id travels to
// the client inside a signed JWT so the cookie cannot be forged, while the
// record itself stays revocable (logout deletes it).
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register creates a self-service account and logs it in. The role is always
// RoleUser. A taken email fails with domain.ErrEmailTaken; the repository's
// unique index backs the pre-check under concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return "", nil, domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.openSession(ctx, created)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return token, created, nil
}

// Login authenticates credentials and opens a session. Any mismatch — unknown
// email or wrong password — yields domain.ErrInvalidCredentials so the two
// cases are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	ok, err := ComparePasswords(password, user.PasswordHash)
	if err != nil || !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return token, user, nil
}

// Logout revokes the session record. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
// A wrong current password is domain.ErrPasswordMismatch (user-correctable),
// distinct from domain.ErrUserNotFound.
func (s *AuthService) ChangePassword(ctx context.Context, input ports.ChangePasswordInput) error {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	ok, err := ComparePasswords(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPasswordMismatch
	}

	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Int("user_id", user.ID).Msg("password changed")
	return nil
}

// openSession stores a fresh session record and returns the signed token.
func (s *AuthService) openSession(ctx context.Context, user *domain.User) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}

	if err := s.sessions.Create(ctx, sid, user.ID, s.sessionTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": sid,
		"uid": user.ID,
		"exp": time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
