package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/partshub/autoparts-backend/internal/modules/customer"
	"github.com/partshub/autoparts-backend/internal/modules/directory"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
)

type claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

type service struct {
	customerRepo customer.Repository
	employeeRepo directory.EmployeeRepository
	jwtKey       []byte
	tokenTTL     time.Duration
}

// NewService creates a new auth service.
func NewService(customerRepo customer.Repository, employeeRepo directory.EmployeeRepository, jwtSecret string, tokenTTL time.Duration) Service {
	return &service{
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		jwtKey:       []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

func (s *service) CustomerLogin(ctx context.Context, username, password string) (string, int64, error) {
	c, err := s.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", 0, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return "", 0, ErrInvalidCredentials
	}
	token, err := s.sign(c.ID, RoleCustomer)
	return token, c.ID, err
}

func (s *service) EmployeeLogin(ctx context.Context, username, password string) (string, int64, int64, error) {
	e, err := s.employeeRepo.GetEmployeeByUsername(ctx, username)
	if err != nil {
		return "", 0, 0, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return "", 0, 0, ErrInvalidCredentials
	}
	token, err := s.sign(e.ID, RoleEmployee)
	return token, e.ID, e.StoreID, err
}

func (s *service) Verify(tokenString string) (*Identity, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return &Identity{ID: id, Role: c.Role}, nil
}

func (s *service) sign(id int64, role string) (string, error) {
	c := &claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(id, 10),
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.jwtKey)
}
