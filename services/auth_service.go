package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginResult is the principal returned to a client after a successful login.
type LoginResult struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// AuthService authenticates and registers customers.
type AuthService struct {
	db          *gorm.DB
	users       *repositories.Repository[models.User]
	credentials *repositories.Repository[models.UserCredential]
	tokens      *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{
		db:          db,
		users:       repositories.New[models.User](db, "user"),
		credentials: repositories.New[models.UserCredential](db, "user credential"),
		tokens:      tokens,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindOne(ctx, "email = ?", normalizeEmail(email))
	if err != nil {
		return nil, credentialError(err)
	}

	cred, err := s.credentials.Get(ctx, user.ID)
	if err != nil {
		return nil, credentialError(err)
	}
	if err := checkPassword(cred.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(models.Principal{ID: user.ID, Name: user.Name, Role: models.RoleUser})
	if err != nil {
		return nil, err
	}

	return &LoginResult{ID: user.ID, Name: user.Name, Email: user.Email, Role: models.RoleUser, Token: token}, nil
}

// Register creates the user and its credential together. Every failure,
// including a duplicate email, is reported as ErrRegistration.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: normalizeEmail(req.Email),
		Phone: strings.TrimSpace(req.Phone),
		Role:  models.RoleUser,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).Add(ctx, user); err != nil {
			return err
		}
		_, err := s.credentials.WithTx(tx).Add(ctx, &models.UserCredential{UserID: user.ID, PasswordHash: hash})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRegistration, err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRegistration, err)
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return apperrors.ErrUnauthorizedUser
	}
	return nil
}

// credentialError hides whether the email or the credential row was missing.
func credentialError(err error) error {
	if errors.Is(err, apperrors.ErrElementNotFound) {
		return apperrors.ErrUnauthorizedUser
	}
	return err
}
