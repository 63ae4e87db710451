package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedHandler(ja *jwtauth.JWTAuth) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return jwtauth.Verifier(ja)(AuthRequired(ja)(ok))
}

func encodeToken(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) string {
	t.Helper()
	_, tokenString, err := ja.Encode(claims)
	require.NoError(t, err)
	return tokenString
}

func TestAuthRequired(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	handler := newProtectedHandler(ja)
	exp := time.Now().Add(15 * time.Minute).Unix()

	tests := []struct {
		name       string
		claims     map[string]interface{}
		noToken    bool
		wantStatus int
	}{
		{
			name:       "missing token",
			noToken:    true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid access token",
			claims: map[string]interface{}{
				"employee_id": "emp-1", "store_id": "store-1", "role": "staff",
				"type": "access", "exp": exp,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "refresh token rejected",
			claims: map[string]interface{}{
				"employee_id": "emp-1", "store_id": "store-1",
				"type": "refresh", "exp": exp,
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing employee_id claim",
			claims: map[string]interface{}{
				"store_id": "store-1", "type": "access", "exp": exp,
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing store_id claim",
			claims: map[string]interface{}{
				"employee_id": "emp-1", "type": "access", "exp": exp,
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if !tt.noToken {
				req.Header.Set("Authorization", "Bearer "+encodeToken(t, ja, tt.claims))
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
