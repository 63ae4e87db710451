package auth

import "context"

// AuthService defines authentication business logic
type AuthService interface {
	// Login authenticates an employee by store code, employee code and password
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)

	// Logout revokes the presented refresh token
	Logout(ctx context.Context, req RefreshRequest) error
}
