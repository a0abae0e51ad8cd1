package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/edunexus/schoolhub/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Claims extends JWT standard claims with the caller's role and links.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int        `json:"user_id"`
	Role      model.Role `json:"role"`
	BranchID  int        `json:"branch_id,omitempty"` // 0 for superadmins
	StaffID   *int       `json:"staff_id,omitempty"`
	StudentID *int       `json:"student_id,omitempty"`
}

// Can reports whether the caller's role grants p.
func (c *Claims) Can(p model.Permission) bool {
	return model.RoleHasPermission(c.Role, p)
}

// LoginResult is returned on successful sign-in.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      session.User `json:"user"`
}

// AuthService handles authentication, JWT, and session management.
type AuthService struct {
	cfg      *config.Config
	users    *repository.UserRepository
	sessions session.Store
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users *repository.UserRepository, sessions session.Store, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:      cfg,
		users:    users,
		sessions: sessions,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login validates credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := s.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	res, err := s.openSession(ctx, u)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("user_id", u.ID).Str("role", string(u.Role)).Msg("User signed in")
	return res, nil
}

// openSession signs a token for u and writes the matching session.
func (s *AuthService) openSession(ctx context.Context, u *model.User) (*LoginResult, error) {
	jti := uuid.New().String()
	now := time.Now()
	expiresAt := now.Add(s.cfg.JWTExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    u.ID,
		Role:      u.Role,
		BranchID:  u.Branch(),
		StaffID:   u.StaffID,
		StudentID: u.StudentID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	su := ToSessionUser(u)
	if err := s.sessions.Write(ctx, session.Session{
		ID:        jti,
		Token:     signed,
		User:      su,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &LoginResult{Token: signed, ExpiresAt: expiresAt, User: su}, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ValidateSession checks that the token's jti still has a live session.
func (s *AuthService) ValidateSession(ctx context.Context, claims *Claims) (*session.Session, error) {
	sess, err := s.sessions.Read(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrSessionEnded
		}
		return nil, err
	}
	return sess, nil
}

// Logout clears the caller's session.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	return s.sessions.Clear(ctx, claims.ID)
}

// Me returns the cached session user.
func (s *AuthService) Me(ctx context.Context, claims *Claims) (*session.User, error) {
	sess, err := s.ValidateSession(ctx, claims)
	if err != nil {
		return nil, err
	}
	return &sess.User, nil
}

// UpdateProfile saves the caller's profile and overwrites the cached
// session user with the stored row.
func (s *AuthService) UpdateProfile(ctx context.Context, claims *Claims, req model.UpdateProfileRequest) (*session.User, error) {
	if err := s.users.UpdateProfile(ctx, claims.UserID, req); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	su := ToSessionUser(u)
	if err := s.sessions.UpdateUser(ctx, claims.ID, su); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrSessionEnded
		}
		return nil, err
	}
	return &su, nil
}

// ChangePassword verifies the current password, stores the new one and ends
// every session of the user. A fresh session is returned for the caller.
func (s *AuthService) ChangePassword(ctx context.Context, claims *Claims, req model.ChangePasswordRequest) (*LoginResult, error) {
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.CheckPassword(u.PasswordHash, req.CurrentPassword); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return nil, err
	}
	if err := s.sessions.ClearUser(ctx, u.ID); err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", u.ID).Msg("Password changed, sessions cleared")
	return s.openSession(ctx, u)
}

// EndUserSessions signs a user out everywhere.
func (s *AuthService) EndUserSessions(ctx context.Context, userID int) error {
	return s.sessions.ClearUser(ctx, userID)
}

// ToSessionUser converts a user row into the cached session shape.
func ToSessionUser(u *model.User) session.User {
	return session.User{
		ID:        u.ID,
		BranchID:  u.Branch(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		Role:      string(u.Role),
		StaffID:   u.StaffID,
		StudentID: u.StudentID,
	}
}
