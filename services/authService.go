package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/repositories"
)

// Every credential failure surfaces as this one message; callers never learn
// which check failed.
const msgInvalidCredentials = "Could not validate credentials"

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	AddressLine1 string
	Locality     string
	City         string
	Postcode     string
}

type UpdateProfileInput struct {
	Name     *string
	Password *string
}

type AuthService struct {
	users    *repositories.UserRepository
	codes    *UserCodeGenerator
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users *repositories.UserRepository, codes *UserCodeGenerator, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		codes:    codes,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Register creates a user with a hashed password and a generated user code.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	postcode := strings.ToUpper(strings.TrimSpace(input.Postcode))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing users", err)
	}
	if exists {
		return nil, apperrors.Conflict("Email already registered")
	}

	userCode, err := s.codes.Generate(ctx, postcode, time.Now())
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Phone:        strings.TrimSpace(input.Phone),
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		Locality:     strings.TrimSpace(input.Locality),
		City:         strings.TrimSpace(input.City),
		Postcode:     postcode,
		UserCode:     userCode,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, apperrors.Validation("Incorrect email or password")
	}
	if !CheckPassword(user.PasswordHash, password) {
		return "", nil, apperrors.Validation("Incorrect email or password")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, apperrors.Internal("Failed to generate token", err)
	}
	return token, user, nil
}

// IssueToken signs an HS256 token with subject, role and expiry claims.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}

// VerifyToken decodes a bearer token and returns the subject. It fails
// closed: signature, expiry, algorithm and parse failures are all reported
// with the same error.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperrors.Unauthenticated(msgInvalidCredentials)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apperrors.Unauthenticated(msgInvalidCredentials)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, apperrors.Unauthenticated(msgInvalidCredentials)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, apperrors.Unauthenticated(msgInvalidCredentials)
	}
	return userID, nil
}

// CurrentUser resolves a verified token subject to a stored user.
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	userID, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Unauthenticated(msgInvalidCredentials)
	}
	return user, nil
}

// UpdateProfile applies self-service changes to name and password.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, input UpdateProfileInput) (*models.User, error) {
	updated := false

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.Validation("Name cannot be empty")
		}
		if name != user.Name {
			user.Name = name
			updated = true
		}
	}

	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < 8 {
			return nil, apperrors.Validation("Password must be at least 8 characters")
		}
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, apperrors.Internal("Failed to hash password", err)
		}
		user.PasswordHash = hash
		updated = true
	}

	if updated {
		if err := s.users.Save(ctx, user); err != nil {
			return nil, apperrors.Internal("Failed to update profile", err)
		}
	}
	return user, nil
}
