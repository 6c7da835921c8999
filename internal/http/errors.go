package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/guttosm/cart-service/internal/circuitbreaker"
	"github.com/guttosm/cart-service/internal/domain/dto"
	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/i18n"
	"github.com/guttosm/cart-service/internal/service"
)

// writeBindError answers a body that failed to bind or validate.
func writeBindError(builder *ResponseBuilder, err error) {
	var validation *dto.ValidationError
	if !errors.As(err, &validation) {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	switch validation {
	case dto.ErrInvalidQuantity:
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationQuantity, err)
	case dto.ErrInvalidShipping:
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationShipping, err)
	default:
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err,
			map[string]string{validation.Field: validation.Message})
	}
}

// writeServiceError maps cart and checkout errors to a status and message.
func writeServiceError(builder *ResponseBuilder, err error) {
	var stock *service.InsufficientStockError
	switch {
	case errors.As(err, &stock):
		builder.ErrorWithDetails(http.StatusConflict, i18n.ErrKeyInsufficientStock, err, map[string]string{
			"product_id": strconv.FormatInt(stock.ProductID, 10),
			"size_id":    strconv.FormatInt(stock.SizeID, 10),
			"available":  strconv.Itoa(stock.Available),
			"requested":  strconv.Itoa(stock.Requested),
		})
	case errors.Is(err, model.ErrInvalidQuantity):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationQuantity, err)
	case errors.Is(err, model.ErrLineNotFound):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationLineIndex, err)
	case errors.Is(err, service.ErrInvalidShipping):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationShipping, err)
	case errors.Is(err, model.ErrProductNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyProductNotFound, err)
	case errors.Is(err, model.ErrCouponNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyCouponNotFound, err)
	case errors.Is(err, service.ErrCatalogUnavailable):
		builder.Error(http.StatusBadGateway, i18n.ErrKeyCatalogUnavailable, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, err)
	case errors.Is(err, context.DeadlineExceeded):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// parseLineIndex reads the :index path parameter.
func parseLineIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, model.ErrLineNotFound
	}
	return index, nil
}
