package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/abc-staff/staff-backend-go/internal/domain/auth"
	"github.com/abc-staff/staff-backend-go/internal/domain/employee"
	"github.com/abc-staff/staff-backend-go/internal/domain/store"
	"github.com/abc-staff/staff-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	store.StoreRepository
	jwtService jwt.Service
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	storeRepo store.StoreRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		StoreRepository:    storeRepo,
		jwtService:         jwtService,
	}
}

// Login implements auth.AuthService. Lookup failures and password
// mismatches collapse into the same error so the response does not reveal
// which part of the credentials was wrong.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	st, err := a.StoreRepository.GetByCode(ctx, req.StoreCode)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get store: %w", err)
	}

	emp, err := a.EmployeeRepository.GetByCode(ctx, st.ID, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if !emp.IsActive {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}

	if emp.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(emp)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	employeeID, err := a.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	// The store ID is not carried in the refresh token, so the employee is
	// looked up across stores by ID alone.
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, "")
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if !emp.IsActive {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}

	// Rotate: the presented token is dead once exchanged.
	a.jwtService.RevokeToken(req.RefreshToken)

	return a.issueTokens(emp)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(_ context.Context, req auth.RefreshRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := a.jwtService.ValidateRefreshToken(req.RefreshToken); err != nil {
		return auth.ErrInvalidToken
	}

	a.jwtService.RevokeToken(req.RefreshToken)
	return nil
}

func (a *AuthServiceImpl) issueTokens(emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, accessExp, err := a.jwtService.GenerateAccessToken(emp.ID, emp.StoreID, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := a.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
	}, nil
}
