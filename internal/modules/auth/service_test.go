package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/partshub/autoparts-backend/internal/modules/customer"
	"github.com/partshub/autoparts-backend/internal/modules/directory"
)

type fakeCustomerRepo struct{ customers map[string]*customer.Customer }

func (r *fakeCustomerRepo) Create(context.Context, *customer.Customer) error { return nil }
func (r *fakeCustomerRepo) GetByID(context.Context, int64) (*customer.Customer, error) {
	return nil, sql.ErrNoRows
}
func (r *fakeCustomerRepo) GetByUsername(_ context.Context, username string) (*customer.Customer, error) {
	if c, ok := r.customers[username]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

type fakeEmployeeRepo struct{ employees map[string]*directory.Employee }

func (r *fakeEmployeeRepo) CreateEmployee(context.Context, *directory.Employee) error { return nil }
func (r *fakeEmployeeRepo) GetEmployeeByID(context.Context, int64) (*directory.Employee, error) {
	return nil, sql.ErrNoRows
}
func (r *fakeEmployeeRepo) GetEmployeeByUsername(_ context.Context, username string) (*directory.Employee, error) {
	if e, ok := r.employees[username]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}
func (r *fakeEmployeeRepo) ListEmployeesByStore(context.Context, int64) ([]*directory.Employee, error) {
	return nil, nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(
		&fakeCustomerRepo{customers: map[string]*customer.Customer{
			"shopper": {ID: 42, Username: "shopper", PasswordHash: hash(t, "secret")},
		}},
		&fakeEmployeeRepo{employees: map[string]*directory.Employee{
			"clerk": {ID: 10, StoreID: 1, Username: "clerk", PasswordHash: hash(t, "hunter2")},
		}},
		"test-signing-key", time.Hour)
}

func TestCustomerLoginRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, id, err := svc.CustomerLogin(context.Background(), "shopper", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.ID)
	assert.Equal(t, RoleCustomer, identity.Role)
}

func TestEmployeeLoginRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, id, storeID, err := svc.EmployeeLogin(context.Background(), "clerk", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	assert.Equal(t, int64(1), storeID)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, identity.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.CustomerLogin(ctx, "shopper", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.CustomerLogin(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.EmployeeLogin(ctx, "clerk", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	svc := newTestService(t)
	other := NewService(&fakeCustomerRepo{customers: map[string]*customer.Customer{
		"shopper": {ID: 42, Username: "shopper", PasswordHash: hash(t, "secret")},
	}}, &fakeEmployeeRepo{}, "different-key", time.Hour)

	token, _, err := other.CustomerLogin(context.Background(), "shopper", "secret")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
