package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// silentT lets assertions be polled without failing the test.
type silentT struct{}

func (silentT) Logf(string, ...interface{})   {}
func (silentT) Errorf(string, ...interface{}) {}
func (silentT) FailNow()                      {}

func TestAuditLog(t *testing.T) {
	tests := []struct {
		name          string
		actionType    string
		message       string
		fields        map[string]interface{}
		identity      *model.Identity
		useNilLogging bool
		setupMocks    func(*mocks.MockLoggingService)
	}{
		{
			name:       "customer cart mutation",
			actionType: "cart_add_item",
			message:    "Item added to cart",
			fields:     map[string]interface{}{"product_id": int64(42), "quantity": 2},
			identity:   &model.Identity{CustomerID: "7", GuestID: "g1"},
			setupMocks: func(mockLogging *mocks.MockLoggingService) {
				mockLogging.On("CreateLog", mock.Anything, mock.MatchedBy(func(entry *model.LogEntry) bool {
					return entry.ActionType == "cart_add_item" &&
						entry.Message == "Item added to cart" &&
						entry.Level == "info" &&
						entry.CustomerID == "7" &&
						entry.CartKey == "cart_client_7" &&
						entry.RequestID != ""
				})).Return(nil)
			},
		},
		{
			name:       "guest cart mutation",
			actionType: "cart_clear",
			message:    "Cart cleared",
			identity:   &model.Identity{GuestID: "g1"},
			setupMocks: func(mockLogging *mocks.MockLoggingService) {
				mockLogging.On("CreateLog", mock.Anything, mock.MatchedBy(func(entry *model.LogEntry) bool {
					return entry.ActionType == "cart_clear" &&
						entry.CustomerID == "" &&
						entry.CartKey == "cart_guest_g1"
				})).Return(nil)
			},
		},
		{
			name:       "no identity resolved",
			actionType: "pricing_quote",
			message:    "Quote",
			setupMocks: func(mockLogging *mocks.MockLoggingService) {
				mockLogging.On("CreateLog", mock.Anything, mock.MatchedBy(func(entry *model.LogEntry) bool {
					return entry.ActionType == "pricing_quote" && entry.CartKey == ""
				})).Return(nil)
			},
		},
		{
			name:          "nil logging service",
			actionType:    "cart_clear",
			message:       "Cart cleared",
			useNilLogging: true,
			setupMocks:    func(*mocks.MockLoggingService) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			mockLoggingService := new(mocks.MockLoggingService)
			tt.setupMocks(mockLoggingService)

			router.Use(RequestID())
			router.POST("/api/cart/items", func(c *gin.Context) {
				if tt.identity != nil {
					c.Set(string(IdentityKey), *tt.identity)
				}
				if tt.useNilLogging {
					AuditLog(nil, c, tt.actionType, tt.message, tt.fields)
				} else {
					AuditLog(mockLoggingService, c, tt.actionType, tt.message, tt.fields)
				}
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Eventually(t, func() bool {
				return mockLoggingService.AssertExpectations(silentT{})
			}, time.Second, 10*time.Millisecond)
			mockLoggingService.AssertExpectations(t)
		})
	}
}

func TestAuditLogError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mockLoggingService := new(mocks.MockLoggingService)
	mockLoggingService.On("CreateLog", mock.Anything, mock.MatchedBy(func(entry *model.LogEntry) bool {
		return entry.ActionType == "cart_add_item" &&
			entry.Level == "error" &&
			entry.Error == assert.AnError.Error() &&
			entry.CartKey == "cart_guest_g1"
	})).Return(nil)

	router.Use(RequestID())
	router.POST("/api/cart/items", func(c *gin.Context) {
		c.Set(string(IdentityKey), model.Identity{GuestID: "g1"})
		AuditLogError(mockLoggingService, c, "cart_add_item", "Add rejected", assert.AnError, nil)
		c.Status(http.StatusConflict)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cart/items", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Eventually(t, func() bool {
		return mockLoggingService.AssertExpectations(silentT{})
	}, time.Second, 10*time.Millisecond)
}

func TestAuditLog_UsesAsyncLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockLoggingService := new(mocks.MockLoggingService)
	mockLoggingService.On("CreateLog", mock.Anything, mock.Anything).Return(nil).Once()

	InitAsyncLogger(mockLoggingService, AsyncLoggerConfig{BufferSize: 4, NumWorkers: 1, WriteTimeout: time.Second})
	t.Cleanup(StopAsyncLogger)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	AuditLog(mockLoggingService, c, "cart_clear", "Cart cleared", nil)

	assert.Eventually(t, func() bool {
		_, _, written, _ := GetAsyncLogger().Stats()
		return written == 1
	}, time.Second, 10*time.Millisecond)
}
