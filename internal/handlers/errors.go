package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/middleware"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

// respondError translates service errors into the ErrorResponse envelope
func respondError(c echo.Context, err error) error {
	var (
		notFound     *common.NotFoundError
		validation   *common.ValidationError
		insufficient *common.InsufficientStockError
		invalidState *common.InvalidStateError
		conflict     *common.ReferentialConflictError
		fieldErrors  validator.ValidationErrors
		httpErr      *echo.HTTPError
	)

	switch {
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, common.CreateErrorResponse("NOT_FOUND", notFound.Error(), nil))
	case errors.As(err, &validation):
		field := validation.Field
		if field == "" {
			field = "request"
		}
		return common.SendValidationError(c, field, validation.Message)
	case errors.As(err, &fieldErrors):
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Validation failed", middleware.ValidationDetails(fieldErrors)))
	case errors.As(err, &insufficient):
		return common.SendConflictError(c, "INSUFFICIENT_STOCK", insufficient.Error(), map[string]string{
			"part_id":   strconv.FormatInt(insufficient.PartID, 10),
			"sku":       insufficient.SKU,
			"available": strconv.Itoa(insufficient.Available),
			"requested": strconv.Itoa(insufficient.Requested),
		})
	case errors.As(err, &invalidState):
		return common.SendConflictError(c, "INVALID_STATE", invalidState.Error(), map[string]string{
			"status": invalidState.Status,
			"action": invalidState.Action,
		})
	case errors.As(err, &conflict):
		details := make(map[string]string, len(conflict.Dependents))
		for table, count := range conflict.Dependents {
			details[table] = strconv.FormatInt(count, 10)
		}
		return common.SendConflictError(c, "REFERENTIAL_CONFLICT", conflict.Error(), details)
	case errors.As(err, &httpErr):
		return httpErr
	}

	logger.Error(c.Request().Context()).Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")
	return common.SendServerError(c, "Internal server error")
}

// bindAndValidate binds the request body and runs the struct validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return common.NewValidationError("body", "invalid request format")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return err
		}
	}
	return nil
}

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

func parseOptionalID(value, field string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil, common.NewValidationError(field, "must be a positive integer")
	}
	return &id, nil
}

func parseBool(value string) bool {
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

// pagination reads limit and offset query params with the shared bounds
func pagination(c echo.Context) (int, int, error) {
	limit, offset := 0, 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		l, err := strconv.Atoi(limitParam)
		if err != nil {
			return 0, 0, common.NewValidationError("limit", "must be an integer")
		}
		limit = l
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		o, err := strconv.Atoi(offsetParam)
		if err != nil {
			return 0, 0, common.NewValidationError("offset", "must be an integer")
		}
		offset = o
	}
	return common.ValidatePaginationParams(limit, offset)
}
