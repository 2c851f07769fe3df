package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/services"
)

// PartHandlers handles part catalog and stock adjustment requests
type PartHandlers struct {
	partService         services.PartService
	stockService        services.StockService
	ledgerService       services.LedgerService
	salesHistoryService services.SalesHistoryService
	cascadeService      services.CascadeService
}

func NewPartHandlers(
	partService services.PartService,
	stockService services.StockService,
	ledgerService services.LedgerService,
	salesHistoryService services.SalesHistoryService,
	cascadeService services.CascadeService,
) *PartHandlers {
	return &PartHandlers{
		partService:         partService,
		stockService:        stockService,
		ledgerService:       ledgerService,
		salesHistoryService: salesHistoryService,
		cascadeService:      cascadeService,
	}
}

// PartRequest is the create and update payload. stock_quantity is only honoured on create.
type PartRequest struct {
	SKU               string  `json:"sku" validate:"required,max=100"`
	Name              string  `json:"name" validate:"required,max=255"`
	Description       *string `json:"description"`
	CategoryID        *int64  `json:"category_id"`
	SupplierID        *int64  `json:"supplier_id"`
	LineCodeID        *int64  `json:"line_code_id"`
	UnitPrice         string  `json:"unit_price"`
	StockQuantity     int     `json:"stock_quantity" validate:"gte=0"`
	MinStockThreshold int     `json:"min_stock_threshold" validate:"gte=0"`
	Unit              string  `json:"unit" validate:"max=20"`
}

func (r *PartRequest) toModel() (*models.Part, error) {
	unitPrice, err := common.ParseMoney(r.UnitPrice, "unit_price")
	if err != nil {
		return nil, err
	}
	return &models.Part{
		SKU:               r.SKU,
		Name:              r.Name,
		Description:       r.Description,
		CategoryID:        r.CategoryID,
		SupplierID:        r.SupplierID,
		LineCodeID:        r.LineCodeID,
		UnitPrice:         unitPrice,
		StockQuantity:     r.StockQuantity,
		MinStockThreshold: r.MinStockThreshold,
		Unit:              r.Unit,
	}, nil
}

// AdjustStockRequest is a manual stock correction. Mode "delta" adds quantity, "absolute" sets it.
type AdjustStockRequest struct {
	Mode     string  `json:"mode" validate:"omitempty,oneof=delta absolute"`
	Quantity *int    `json:"quantity" validate:"required"`
	Notes    *string `json:"notes"`
}

// CreatePart handles POST /parts
func (h *PartHandlers) CreatePart(c echo.Context) error {
	var req PartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	part, err := req.toModel()
	if err != nil {
		return respondError(c, err)
	}

	if err := h.partService.Create(c.Request().Context(), part); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, part)
}

// ListParts handles GET /parts
func (h *PartHandlers) ListParts(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}

	filter := &models.PartSearchFilter{
		Query:           c.QueryParam("q"),
		LowStockOnly:    parseBool(c.QueryParam("low_stock")),
		IncludeArchived: parseBool(c.QueryParam("include_archived")),
		Limit:           limit,
		Offset:          offset,
	}
	if filter.CategoryID, err = parseOptionalID(c.QueryParam("category_id"), "category_id"); err != nil {
		return respondError(c, err)
	}
	if filter.SupplierID, err = parseOptionalID(c.QueryParam("supplier_id"), "supplier_id"); err != nil {
		return respondError(c, err)
	}
	if filter.LineCodeID, err = parseOptionalID(c.QueryParam("line_code_id"), "line_code_id"); err != nil {
		return respondError(c, err)
	}

	parts, err := h.partService.Search(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"parts":  parts,
		"limit":  limit,
		"offset": offset,
	})
}

// GetPart handles GET /parts/:id
func (h *PartHandlers) GetPart(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	part, err := h.partService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, part)
}

// UpdatePart handles PUT /parts/:id
func (h *PartHandlers) UpdatePart(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req PartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	part, err := req.toModel()
	if err != nil {
		return respondError(c, err)
	}
	part.ID = id

	if err := h.partService.Update(c.Request().Context(), part); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, part)
}

// DeletePart handles DELETE /parts/:id, cascading when force=true
func (h *PartHandlers) DeletePart(c echo.Context) error {
	return deleteEntity(c, h.cascadeService, models.EntityPart)
}

// AdjustStock handles POST /parts/:id/adjust
func (h *PartHandlers) AdjustStock(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req AdjustStockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Quantity == nil {
		return respondError(c, common.NewValidationError("quantity", "is required"))
	}

	mode := models.StockDelta
	if strings.EqualFold(req.Mode, "absolute") {
		mode = models.StockAbsolute
	}

	movement, err := h.stockService.Adjust(c.Request().Context(), id, mode, *req.Quantity, req.Notes)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, movement)
}

// ArchivePart handles POST /parts/:id/archive
func (h *PartHandlers) ArchivePart(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	part, err := h.partService.Archive(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, part)
}

// RestorePart handles POST /parts/:id/restore
func (h *PartHandlers) RestorePart(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	part, err := h.partService.Restore(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, part)
}

// PartLedger handles GET /parts/:id/ledger, oldest entry first
func (h *PartHandlers) PartLedger(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	entries, err := h.ledgerService.History(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"part_id": id,
		"entries": entries,
	})
}

// VerifyPartLedger handles GET /parts/:id/ledger/verify
func (h *PartHandlers) VerifyPartLedger(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	verification, err := h.ledgerService.Verify(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, verification)
}

// SalesHistory handles GET /parts/sku/:sku/sales-history
func (h *PartHandlers) SalesHistory(c echo.Context) error {
	history, err := h.salesHistoryService.BySKU(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sku":     c.Param("sku"),
		"history": history,
	})
}

// deleteEntity runs the plain or forced delete for DELETE /<entity>/:id
func deleteEntity(c echo.Context, cascadeService services.CascadeService, entity models.EntityKind) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if parseBool(c.QueryParam("force")) {
		result, err := cascadeService.ForceDelete(c.Request().Context(), entity, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, result)
	}

	if err := cascadeService.Delete(c.Request().Context(), entity, id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
