package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/repositories"
	"gorm.io/gorm"
)

// AdminAuthService authenticates and registers employees.
type AdminAuthService struct {
	db          *gorm.DB
	employees   *repositories.Repository[models.Employee]
	credentials *repositories.Repository[models.EmployeeCredential]
	tokens      *TokenService
}

func NewAdminAuthService(db *gorm.DB, tokens *TokenService) *AdminAuthService {
	return &AdminAuthService{
		db:          db,
		employees:   repositories.New[models.Employee](db, "employee"),
		credentials: repositories.New[models.EmployeeCredential](db, "employee credential"),
		tokens:      tokens,
	}
}

func (s *AdminAuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	employee, err := s.employees.FindOne(ctx, "email = ?", normalizeEmail(email))
	if err != nil {
		return nil, credentialError(err)
	}

	cred, err := s.credentials.Get(ctx, employee.ID)
	if err != nil {
		return nil, credentialError(err)
	}
	if err := checkPassword(cred.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(models.Principal{ID: employee.ID, Name: employee.Name, Role: employee.Role})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		ID:    employee.ID,
		Name:  employee.Name,
		Email: employee.Email,
		Role:  employee.Role,
		Token: token,
	}, nil
}

func (s *AdminAuthService) Register(ctx context.Context, req RegisterRequest) (*models.Employee, error) {
	if !models.IsEmployeeRole(req.Role) {
		return nil, apperrors.Validation("role must be one of %s", strings.Join(models.EmployeeRoles, ", "))
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		Name:  strings.TrimSpace(req.Name),
		Email: normalizeEmail(req.Email),
		Phone: strings.TrimSpace(req.Phone),
		Role:  req.Role,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.employees.WithTx(tx).Add(ctx, employee); err != nil {
			return err
		}
		_, err := s.credentials.WithTx(tx).Add(ctx, &models.EmployeeCredential{EmployeeID: employee.ID, PasswordHash: hash})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRegistration, err)
	}
	return employee, nil
}
