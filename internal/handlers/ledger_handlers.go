package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/services"
)

// LedgerHandlers serves the inventory ledger and low-stock alerts
type LedgerHandlers struct {
	ledgerService services.LedgerService
	alertService  services.AlertService
}

func NewLedgerHandlers(ledgerService services.LedgerService, alertService services.AlertService) *LedgerHandlers {
	return &LedgerHandlers{
		ledgerService: ledgerService,
		alertService:  alertService,
	}
}

// ListLedger handles GET /ledger, newest entry first
func (h *LedgerHandlers) ListLedger(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}

	filter := &models.LedgerFilter{Limit: limit, Offset: offset}
	if filter.PartID, err = parseOptionalID(c.QueryParam("part_id"), "part_id"); err != nil {
		return respondError(c, err)
	}
	if value := c.QueryParam("transaction_type"); value != "" {
		transactionType := models.TransactionType(value)
		if !transactionType.Valid() {
			return respondError(c, common.NewValidationError("transaction_type", "is not a known transaction type"))
		}
		filter.TransactionType = &transactionType
	}
	if value := c.QueryParam("reference_type"); value != "" {
		referenceType := models.ReferenceType(value)
		if !referenceType.Valid() {
			return respondError(c, common.NewValidationError("reference_type", "is not a known reference type"))
		}
		filter.ReferenceType = &referenceType
	}

	entries, err := h.ledgerService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"limit":   limit,
		"offset":  offset,
	})
}

// ListAlerts handles GET /alerts; unresolved=true hides resolved alerts
func (h *LedgerHandlers) ListAlerts(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}

	alerts, err := h.alertService.List(c.Request().Context(), parseBool(c.QueryParam("unresolved")), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"limit":  limit,
		"offset": offset,
	})
}

// ResolveAlert handles POST /alerts/:id/resolve
func (h *LedgerHandlers) ResolveAlert(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	alert, err := h.alertService.Resolve(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, alert)
}
