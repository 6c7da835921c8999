package middleware

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/guttosm/cart-service/internal/domain/dto"
	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/i18n"
	"github.com/guttosm/cart-service/internal/logger"
)

const (
	// DefaultGuestHeader carries the guest id between requests.
	DefaultGuestHeader = "X-Guest-ID"
	// IdentityKey is the context key holding the resolved model.Identity.
	IdentityKey ContextKey = "identity"
)

var (
	errMissingCustomer = errors.New("token carries no customer id")
	guestIDPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// CustomerClaims is the token issued by the storefront backend after login.
// The customer id is read from customer_id, falling back to sub.
type CustomerClaims struct {
	CustomerID string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

func (c CustomerClaims) customer() string {
	if c.CustomerID != "" {
		return c.CustomerID
	}
	return c.Subject
}

// IdentityConfig configures shopper identification.
type IdentityConfig struct {
	// Secret verifies HS256 customer tokens. Bearer tokens are ignored when empty.
	Secret []byte
	// GuestHeader defaults to DefaultGuestHeader.
	GuestHeader string
}

// Identity resolves who owns the cart for this request. A valid Bearer token
// makes the shopper a customer. The guest id comes from the guest header, or
// a new one is minted and echoed back so the client can keep it.
func Identity(cfg IdentityConfig) gin.HandlerFunc {
	header := cfg.GuestHeader
	if header == "" {
		header = DefaultGuestHeader
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		var id model.Identity

		if token, ok := bearerToken(c); ok && len(cfg.Secret) > 0 {
			customerID, err := parseCustomer(parser, token, cfg.Secret)
			if err != nil {
				log := logger.Logger()
				log.Debug().Err(err).Str("request_id", GetRequestID(c)).Msg("rejected customer token")
				message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidToken, i18n.GetLocale(c))
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
				return
			}
			id.CustomerID = customerID
		}

		id.GuestID = strings.TrimSpace(c.GetHeader(header))
		if !guestIDPattern.MatchString(id.GuestID) {
			id.GuestID = uuid.NewString()
		}
		c.Header(header, id.GuestID)

		c.Set(string(IdentityKey), id)
		c.Next()
	}
}

// GetIdentity returns the identity resolved by Identity.
func GetIdentity(c *gin.Context) model.Identity {
	if v, exists := c.Get(string(IdentityKey)); exists {
		if id, ok := v.(model.Identity); ok {
			return id
		}
	}
	return model.Identity{}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func parseCustomer(parser *jwt.Parser, token string, secret []byte) (string, error) {
	claims := &CustomerClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	customerID := claims.customer()
	if customerID == "" {
		return "", errMissingCustomer
	}
	return customerID, nil
}
