package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCustomerNotFound is returned when a customer id does not exist.
var ErrCustomerNotFound = errors.New("customer not found")

// Service defines customer account logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Customer, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
}

type service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Customer, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("customer_email is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	c := &Customer{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	return c, err
}
