package middleware

import (
	"net/http"

	"github.com/abc-staff/staff-backend-go/internal/domain/auth"
	"github.com/abc-staff/staff-backend-go/internal/domain/employee"
	"github.com/abc-staff/staff-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// ManagerOnly restricts a route to managers and owners.
func ManagerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !employee.Role(role).CanManage() {
			response.HandleError(w, employee.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// OwnerOnly restricts a route to store owners.
func OwnerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || employee.Role(role) != employee.RoleOwner {
			response.HandleError(w, employee.ErrOwnerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
