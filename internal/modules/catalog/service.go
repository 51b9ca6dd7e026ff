package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrPartNotFound is returned when no part matches the given key.
var ErrPartNotFound = errors.New("part not found")

// Service defines catalog business logic.
type Service interface {
	CreatePart(ctx context.Context, req CreatePartRequest) (*AutoPart, error)
	GetPart(ctx context.Context, id int64) (*AutoPart, error)
	UpdatePart(ctx context.Context, id int64, req CreatePartRequest) (*AutoPart, error)
	DeletePart(ctx context.Context, id int64) error
	Search(ctx context.Context, filter SearchFilter) ([]*AutoPart, error)
	Categories(ctx context.Context) ([]string, error)

	// Find resolves a caller-supplied part key: numeric id first, then
	// SKU, then exact case-insensitive name. Returns ErrPartNotFound if
	// nothing matches.
	Find(ctx context.Context, key string) (*AutoPart, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreatePart(ctx context.Context, req CreatePartRequest) (*AutoPart, error) {
	p, err := partFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetPart(ctx context.Context, id int64) (*AutoPart, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartNotFound
	}
	return p, err
}

func (s *service) UpdatePart(ctx context.Context, id int64, req CreatePartRequest) (*AutoPart, error) {
	if _, err := s.GetPart(ctx, id); err != nil {
		return nil, err
	}
	p, err := partFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeletePart(ctx context.Context, id int64) error {
	if _, err := s.GetPart(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Search(ctx context.Context, filter SearchFilter) ([]*AutoPart, error) {
	return s.repo.Search(ctx, filter)
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *service) Find(ctx context.Context, key string) (*AutoPart, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrPartNotFound
	}

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		if p, err := s.repo.GetByID(ctx, id); err == nil {
			return p, nil
		}
	}

	if p, err := s.repo.GetBySKU(ctx, key); err == nil {
		return p, nil
	}

	if p, err := s.repo.GetByName(ctx, key); err == nil {
		return p, nil
	}

	return nil, ErrPartNotFound
}

func partFromRequest(req CreatePartRequest) (*AutoPart, error) {
	if req.SKU == "" || req.Name == "" {
		return nil, fmt.Errorf("sku and name are required")
	}
	condition := Condition(strings.ToUpper(req.Condition))
	if !ValidCondition(condition) {
		return nil, fmt.Errorf("invalid condition: %s", req.Condition)
	}
	if req.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("unit_price must be positive")
	}
	if req.ReorderLevel < 0 {
		return nil, fmt.Errorf("reorder_level must not be negative")
	}
	return &AutoPart{
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		Condition:    condition,
		UnitPrice:    req.UnitPrice,
		ReorderLevel: req.ReorderLevel,
	}, nil
}
