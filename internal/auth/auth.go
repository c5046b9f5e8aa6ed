// Package auth hashes passwords and issues the bearer tokens used by the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/printquote/internal/store"
)

var (
	// ErrInvalidCredentials is returned when the identifier or password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned for malformed, expired or foreign tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUsernameTaken is returned on registration with a used username.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrEmailTaken is returned on registration with a used email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordTooLong is returned for passwords longer than bcrypt accepts (72 bytes).
	ErrPasswordTooLong = errors.New("password longer than 72 bytes")
)

// UserStore is the persistence the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *store.User) error
	UserByIdentifier(ctx context.Context, identifier string) (store.User, error)
	UserByUsername(ctx context.Context, username string) (store.User, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, bool, error)
}

// Service registers users and authenticates them with signed tokens.
type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService returns a Service signing tokens with secret valid for ttl.
func NewService(users UserStore, secret string, ttl time.Duration) *Service {
	return &Service{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a user and returns a token for it.
func (s *Service) Register(ctx context.Context, username, email, password string) (string, error) {
	usernameTaken, emailTaken, err := s.users.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		return "", err
	}
	if usernameTaken {
		return "", ErrUsernameTaken
	}
	if emailTaken {
		return "", ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	u := store.User{Username: username, Email: email, PasswordHash: hash, IsActive: true}
	if err := s.users.CreateUser(ctx, &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return "", s.duplicateCause(ctx, username, email, err)
		}
		return "", err
	}

	return s.IssueToken(u.Username)
}

// duplicateCause tells which unique column a concurrent insert collided on.
func (s *Service) duplicateCause(ctx context.Context, username, email string, insertErr error) error {
	usernameTaken, emailTaken, err := s.users.UsernameOrEmailTaken(ctx, username, email)
	switch {
	case err != nil:
		return fmt.Errorf("%w (recheck failed: %v)", insertErr, err)
	case usernameTaken:
		return ErrUsernameTaken
	case emailTaken:
		return ErrEmailTaken
	default:
		return insertErr
	}
}

// Login checks the credentials of identifier (username or email) and returns a token.
func (s *Service) Login(ctx context.Context, identifier, password string) (string, error) {
	u, err := s.users.UserByIdentifier(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(u.Username)
}

// IssueToken signs an HS256 token whose subject is username.
func (s *Service) IssueToken(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a token to an active user.
func (s *Service) Authenticate(ctx context.Context, token string) (store.User, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return store.User{}, ErrInvalidToken
	}

	u, err := s.users.UserByUsername(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return store.User{}, ErrInvalidToken
	}
	if err != nil {
		return store.User{}, err
	}
	if !u.IsActive {
		return store.User{}, ErrInvalidToken
	}
	return u, nil
}
