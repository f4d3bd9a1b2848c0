package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	pkg_hash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const (
	minPasswordLen = 6
	// bcrypt rejects longer inputs
	maxPasswordBytes = 72
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailRe.MatchString(email)
}

func shortPassword(pw string) bool {
	return utf8.RuneCountInString(pw) < minPasswordLen
}

type AuthService struct {
	Users  UserStore
	Events Publisher
	Secret []byte
	TTL    time.Duration
}

type AuthResult struct {
	Token   string
	Expires time.Time
	User    *models.User
}

func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fail(ErrValidation, "Name is required")
	}
	if email == "" || !validEmail(email) {
		return nil, fail(ErrValidation, "Valid email is required")
	}
	if shortPassword(password) {
		return nil, fail(ErrValidation, "Password must be at least 6 characters")
	}
	if len(password) > maxPasswordBytes {
		return nil, fail(ErrValidation, "Password must be at most 72 bytes")
	}
	email = strings.ToLower(email)

	taken, err := s.Users.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fail(ErrConflict, "Email already registered")
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	if role != models.RoleAdmin {
		role = models.RoleUser
	}
	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Gmail:    email,
		Password: pwHash,
		Role:     role,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fail(ErrConflict, "Email already registered")
		}
		return nil, err
	}
	l.Info("user_registered", "user_id", user.ID, "role", user.Role)
	publish(ctx, s.Events, events.TopicUsers, events.New(events.UserRegistered, user.ID, map[string]any{
		"gmail": user.Gmail,
		"role":  user.Role,
	}))

	return s.issue(user)
}

// Login answers the same message for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, fail(ErrValidation, "Email and password are required")
	}

	user, err := s.Users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login failed", "reason", "unknown email")
			return nil, fail(ErrUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.Password, password) {
		l.Warn("login failed", "reason", "wrong password", "user_id", user.ID)
		return nil, fail(ErrUnauthorized, "Invalid credentials")
	}

	return s.issue(user)
}

func (s *AuthService) Verify(raw string) (*tokens.AccessClaims, error) {
	if raw == "" {
		return nil, fail(ErrUnauthorized, "No token provided")
	}
	claims, err := tokens.AccessClaimsFromToken(raw, s.Secret)
	if err != nil {
		return nil, fail(ErrUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, exp, err := tokens.NewAccessToken(user.ID, user.Role, s.Secret, s.TTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Expires: exp, User: user}, nil
}
