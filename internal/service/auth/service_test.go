package auth

import (
	"context"
	"testing"

	"github.com/abc-staff/staff-backend-go/internal/domain/auth"
	"github.com/abc-staff/staff-backend-go/internal/domain/employee"
	"github.com/abc-staff/staff-backend-go/internal/domain/store"
	"github.com/abc-staff/staff-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeStoreRepo struct {
	stores map[string]store.Store // keyed by code
}

func (r fakeStoreRepo) GetByID(_ context.Context, id string) (store.Store, error) {
	for _, st := range r.stores {
		if st.ID == id {
			return st, nil
		}
	}
	return store.Store{}, store.ErrStoreNotFound
}

func (r fakeStoreRepo) GetByCode(_ context.Context, code string) (store.Store, error) {
	st, ok := r.stores[code]
	if !ok {
		return store.Store{}, store.ErrStoreNotFound
	}
	return st, nil
}

func (r fakeStoreRepo) GetTimezoneByID(_ context.Context, _ string) (string, error) {
	return "Asia/Seoul", nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r fakeEmployeeRepo) GetByID(_ context.Context, id string, storeID string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.ID == id && (storeID == "" || emp.StoreID == storeID) {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r fakeEmployeeRepo) GetByCode(_ context.Context, storeID string, code string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.StoreID == storeID && emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r fakeEmployeeRepo) ListActiveByStore(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func newTestService(t *testing.T, active bool) auth.AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	storeRepo := fakeStoreRepo{stores: map[string]store.Store{
		"GANGNAM-01": {ID: "store-1", Code: "GANGNAM-01", Timezone: "Asia/Seoul"},
	}}
	employeeRepo := fakeEmployeeRepo{employees: []employee.Employee{
		{
			ID:           "emp-1",
			StoreID:      "store-1",
			EmployeeCode: "2024-0001",
			Role:         employee.RoleStaff,
			PasswordHash: &hashStr,
			IsActive:     active,
		},
	}}

	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(employeeRepo, storeRepo, jwtService)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t, true)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		StoreCode:    "GANGNAM-01",
		EmployeeCode: "2024-0001",
		Password:     "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.RefreshTokenExpiresIn, tokens.AccessTokenExpiresIn)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		StoreCode:    "GANGNAM-01",
		EmployeeCode: "2024-0001",
		Password:     "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownStoreAndEmployeeLookAlike(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		StoreCode:    "NOPE-01",
		EmployeeCode: "2024-0001",
		Password:     "secret123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		StoreCode:    "GANGNAM-01",
		EmployeeCode: "2024-9999",
		Password:     "secret123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveEmployee(t *testing.T) {
	svc := newTestService(t, false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		StoreCode:    "GANGNAM-01",
		EmployeeCode: "2024-0001",
		Password:     "secret123",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc := newTestService(t, true)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		StoreCode:    "GANGNAM-01",
		EmployeeCode: "2024-0001",
		Password:     "secret123",
	})
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	// The exchanged token is revoked and cannot be replayed.
	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc := newTestService(t, true)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		StoreCode:    "GANGNAM-01",
		EmployeeCode: "2024-0001",
		Password:     "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), auth.RefreshRequest{RefreshToken: tokens.RefreshToken}))

	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
