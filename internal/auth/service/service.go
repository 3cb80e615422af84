// Package service implements authentication business logic: credential checks,
// JWT issuance, refresh token rotation, and user administration.
package service

import (
	"context"
	"errors"
	"time"

	"evmaint_backend/internal/auth/password"
	"evmaint_backend/internal/auth/repository"
	"evmaint_backend/internal/auth/token"
	"evmaint_backend/internal/events"
	"evmaint_backend/platform/apperr"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// SignIn validates credentials and issues an access/refresh token pair.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("signin", email, false, "unknown email")
		return "", "", ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("signin", email, false, "bad password")
		return "", "", ErrInvalidCredentials
	}

	s.log.AuthEvent("signin", email, true, "")
	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token and issues a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return "", "", ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return "", "", ErrTokenExpired
	}

	user, err := s.repo.GetUserByID(ctx, userID.Hex())
	if err != nil {
		return "", "", ErrTokenInvalid
	}

	_ = s.repo.RevokeRefreshToken(ctx, hash)
	return s.issueTokens(ctx, user)
}

// SignOut revokes a refresh token.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// CreateUser provisions a new account (admin operation).
func (s *Service) CreateUser(ctx context.Context, email, plainPassword, fullName, role string, stations []string) (Profile, error) {
	if !ValidRole(role) {
		return Profile{}, apperr.Validation("unknown role")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return Profile{}, err
	}

	user, err := s.repo.CreateUser(ctx, repository.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		Stations:     stations,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return Profile{}, apperr.Conflict("email already registered")
	}
	if err != nil {
		return Profile{}, err
	}

	s.bus.Publish(ctx, events.UserCreated{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		Role:      user.Role,
	})

	return toProfile(user), nil
}

// GetMe returns the profile for the given user ID.
func (s *Service) GetMe(ctx context.Context, userID string) (Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Profile{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return Profile{}, err
	}
	return toProfile(user), nil
}

// UpdateMe updates the caller's own profile fields.
func (s *Service) UpdateMe(ctx context.Context, userID string, fullName *string) (Profile, error) {
	set := bson.M{}
	if fullName != nil {
		set["full_name"] = *fullName
	}
	if len(set) > 0 {
		if err := s.repo.UpdateUser(ctx, userID, set); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return Profile{}, apperr.NotFound("user not found")
			}
			return Profile{}, err
		}
	}
	return s.GetMe(ctx, userID)
}

// ChangePassword verifies the current password and sets a new one.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return apperr.NotFound("user not found")
	}
	if err := password.Compare(user.PasswordHash, current); err != nil {
		return apperr.Unauthorized("current password is incorrect")
	}
	hash, err := password.Hash(next)
	if err != nil {
		return err
	}
	return s.repo.UpdateUser(ctx, userID, bson.M{"password_hash": hash})
}

// ListUsers returns all user profiles (admin operation).
func (s *Service) ListUsers(ctx context.Context) ([]Profile, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, toProfile(u))
	}
	return profiles, nil
}

// SetUserStations replaces a user's station grants (admin operation).
func (s *Service) SetUserStations(ctx context.Context, userID string, stations []string) error {
	if err := s.repo.SetUserStations(ctx, userID, stations); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	s.bus.Publish(ctx, events.StationGrantsChanged{
		BaseEvent: events.NewBaseEvent(),
		UserID:    userID,
		Stations:  stations,
	})
	return nil
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (string, string, error) {
	accessToken, err := s.signJWT(user, s.cfg.GetAccessTokenTTL(), accessTokenType, s.cfg.GetJWTAccessSecret())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := token.GenerateRandomToken(32)
	if err != nil {
		return "", "", err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, hash, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *Service) signJWT(user repository.User, ttl time.Duration, tokenType, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.Hex(),
		"type":     tokenType,
		"roles":    []string{user.Role},
		"stations": user.Stations,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(secret))
}

func toProfile(user repository.User) Profile {
	return Profile{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		Stations:  user.Stations,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
