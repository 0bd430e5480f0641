package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"newsact/internal/model"
)

// AdminStore is the persistence surface the auth service needs.
type AdminStore interface {
	FindByID(ctx context.Context, id string) (model.Admin, error)
	FindByUsername(ctx context.Context, username string) (model.Admin, error)
	Create(ctx context.Context, a model.Admin) error
	Update(ctx context.Context, a model.Admin) error
	Count(ctx context.Context) (int, error)
}

// AuthService verifies credentials and issues/validates bearer tokens.
// Tokens are stateless: the service holds only the signing secret, never
// issued tokens, so rotating the secret invalidates everything outstanding.
type AuthService struct {
	admins    AdminStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(admins AdminStore, jwtSecret string, tokenTTL time.Duration) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &AuthService{
		admins:    admins,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (model.LoginResult, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrAdminNotFound) {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.LoginResult{}, err
	}

	ok, err := VerifyPassword(password, admin.HashedPassword)
	if err != nil {
		return model.LoginResult{}, err
	}
	if !ok {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	token, err := s.IssueToken(admin)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		Admin:       admin.Profile(),
	}, nil
}

func (s *AuthService) IssueToken(admin model.Admin) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature and expiry. Only HS256 is accepted; a token
// claiming any other algorithm (including "none") is invalid regardless of
// its payload. Expiry is reported distinctly so callers can answer precisely.
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrExpiredToken
		}
		return nil, model.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	claims := &model.AuthClaims{}
	claims.AdminID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.AdminID == "" {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) GetAdminByID(ctx context.Context, id string) (model.AdminProfile, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return model.AdminProfile{}, err
	}
	return admin.Profile(), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, adminID string, update model.ProfileUpdateRequest) (model.AdminProfile, error) {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return model.AdminProfile{}, err
	}

	if update.FullName != nil && strings.TrimSpace(*update.FullName) != "" {
		admin.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Email != nil && strings.TrimSpace(*update.Email) != "" {
		admin.Email = strings.TrimSpace(*update.Email)
	}
	if update.AvatarURL != nil {
		admin.AvatarURL = update.AvatarURL
	}
	if update.Password != nil && *update.Password != "" {
		hash, hashErr := HashPassword(*update.Password)
		if hashErr != nil {
			return model.AdminProfile{}, hashErr
		}
		admin.HashedPassword = hash
	}

	if err := s.admins.Update(ctx, admin); err != nil {
		return model.AdminProfile{}, err
	}

	return admin.Profile(), nil
}

// SeedDefaultAdmin creates an initial account when the admins table is empty.
func (s *AuthService) SeedDefaultAdmin(ctx context.Context, username string, password string) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.Admin{
		ID:             uuid.NewString(),
		Username:       username,
		HashedPassword: hash,
		FullName:       "Administrator",
		Email:          "admin@localhost",
		Role:           "Admin",
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("seeded default admin account", "username", username)
	return nil
}
