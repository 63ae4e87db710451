package middleware

import (
	"net/http"

	"github.com/abc-staff/staff-backend-go/internal/domain/auth"
	"github.com/abc-staff/staff-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests that do not carry a valid access token.
// Services read employee_id and store_id straight from the claims, so both
// must be present and non-empty here.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokenType, _ := claims["type"].(string); tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if employeeID, _ := claims["employee_id"].(string); employeeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if storeID, _ := claims["store_id"].(string); storeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
