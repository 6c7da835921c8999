package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identitySecret = []byte("storefront-secret")

func signCustomer(t *testing.T, method jwt.SigningMethod, key interface{}, claims CustomerClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name           string
		secret         []byte
		authHeader     string
		guestHeader    string
		expectedStatus int
		expectCustomer string
		expectGuest    string
		mintsGuest     bool
	}{
		{
			name:           "anonymous request mints a guest id",
			secret:         identitySecret,
			expectedStatus: http.StatusOK,
			mintsGuest:     true,
		},
		{
			name:           "guest header is kept",
			secret:         identitySecret,
			guestHeader:    "guest-123",
			expectedStatus: http.StatusOK,
			expectGuest:    "guest-123",
		},
		{
			name:           "malformed guest header is replaced",
			secret:         identitySecret,
			guestHeader:    "../../etc/passwd",
			expectedStatus: http.StatusOK,
			mintsGuest:     true,
		},
		{
			name:   "customer_id claim",
			secret: identitySecret,
			authHeader: "Bearer " + signCustomer(t, jwt.SigningMethodHS256, identitySecret, CustomerClaims{
				CustomerID:       "42",
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
			}),
			guestHeader:    "guest-123",
			expectedStatus: http.StatusOK,
			expectCustomer: "42",
			expectGuest:    "guest-123",
		},
		{
			name:   "subject claim",
			secret: identitySecret,
			authHeader: "Bearer " + signCustomer(t, jwt.SigningMethodHS256, identitySecret, CustomerClaims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "7", ExpiresAt: future},
			}),
			expectedStatus: http.StatusOK,
			expectCustomer: "7",
			mintsGuest:     true,
		},
		{
			name:   "expired token",
			secret: identitySecret,
			authHeader: "Bearer " + signCustomer(t, jwt.SigningMethodHS256, identitySecret, CustomerClaims{
				CustomerID:       "42",
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "wrong secret",
			secret: identitySecret,
			authHeader: "Bearer " + signCustomer(t, jwt.SigningMethodHS256, []byte("other"), CustomerClaims{
				CustomerID: "42",
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "token without customer",
			secret: identitySecret,
			authHeader: "Bearer " + signCustomer(t, jwt.SigningMethodHS256, identitySecret, CustomerClaims{
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			secret:         identitySecret,
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-bearer authorization is ignored",
			secret:         identitySecret,
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusOK,
			mintsGuest:     true,
		},
		{
			name:           "tokens ignored without a secret",
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: http.StatusOK,
			mintsGuest:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.Identity
			router := gin.New()
			router.Use(RequestID(), Identity(IdentityConfig{Secret: tt.secret}))
			router.GET("/cart", func(c *gin.Context) {
				got = GetIdentity(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.guestHeader != "" {
				req.Header.Set(DefaultGuestHeader, tt.guestHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			assert.Equal(t, tt.expectCustomer, got.CustomerID)
			if tt.mintsGuest {
				assert.Len(t, got.GuestID, 36)
				assert.NotEqual(t, tt.guestHeader, got.GuestID)
			} else {
				assert.Equal(t, tt.expectGuest, got.GuestID)
			}
			assert.Equal(t, got.GuestID, w.Header().Get(DefaultGuestHeader))
		})
	}
}

func TestIdentity_RejectsOtherAlgorithms(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, CustomerClaims{CustomerID: "42"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	router := gin.New()
	router.Use(Identity(IdentityConfig{Secret: identitySecret}))
	router.GET("/cart", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetIdentity_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, model.Identity{}, GetIdentity(c))
}
