package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/services"
)

// DocumentHandlers serves purchase orders, sales invoices, credits and warranties.
// Each handler is bound to one document kind when routes are registered.
type DocumentHandlers struct {
	documentService services.DocumentService
}

func NewDocumentHandlers(documentService services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentService: documentService}
}

// DocumentRequest is the create payload. Purchase orders take supplier_id, every other kind customer_id.
type DocumentRequest struct {
	Number                string                `json:"number" validate:"max=50"`
	SupplierID            *int64                `json:"supplier_id"`
	CustomerID            *int64                `json:"customer_id"`
	Notes                 *string               `json:"notes"`
	OriginalInvoiceNumber *string               `json:"original_invoice_number" validate:"omitempty,max=50"`
	Reason                *string               `json:"reason"`
	Items                 []DocumentItemRequest `json:"items" validate:"dive"`
}

type DocumentItemRequest struct {
	PartID    int64  `json:"part_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func (r *DocumentRequest) toInput(kind models.DocumentKind) (*models.DocumentInput, error) {
	counterparty, field := r.CustomerID, "customer_id"
	if kind.CounterpartyIsSupplier() {
		counterparty, field = r.SupplierID, "supplier_id"
	}
	if counterparty == nil || *counterparty <= 0 {
		return nil, common.NewValidationError(field, "is required")
	}

	input := &models.DocumentInput{
		Kind:           kind,
		Number:         r.Number,
		CounterpartyID: *counterparty,
		Notes:          r.Notes,
		Items:          make([]models.DocumentItemInput, 0, len(r.Items)),
	}
	if kind == models.KindCredit || kind == models.KindWarranty {
		input.OriginalInvoiceNumber = r.OriginalInvoiceNumber
		input.Reason = r.Reason
	}

	for i, item := range r.Items {
		unitPrice, err := common.ParseMoney(item.UnitPrice, fmt.Sprintf("items[%d].unit_price", i))
		if err != nil {
			return nil, err
		}
		input.Items = append(input.Items, models.DocumentItemInput{
			PartID:    item.PartID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
	}

	return input, nil
}

// Create handles POST /<documents>
func (h *DocumentHandlers) Create(kind models.DocumentKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req DocumentRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		input, err := req.toInput(kind)
		if err != nil {
			return respondError(c, err)
		}

		document, err := h.documentService.Create(c.Request().Context(), input)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusCreated, document)
	}
}

// List handles GET /<documents>
func (h *DocumentHandlers) List(kind models.DocumentKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return respondError(c, err)
		}

		filter := &models.DocumentFilter{
			Query:  c.QueryParam("q"),
			Limit:  limit,
			Offset: offset,
		}
		if status := c.QueryParam("status"); status != "" {
			s := models.DocumentStatus(status)
			filter.Status = &s
		}

		counterpartyParam := "customer_id"
		if kind.CounterpartyIsSupplier() {
			counterpartyParam = "supplier_id"
		}
		if filter.CounterpartyID, err = parseOptionalID(c.QueryParam(counterpartyParam), counterpartyParam); err != nil {
			return respondError(c, err)
		}

		documents, err := h.documentService.List(c.Request().Context(), kind, filter)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"documents": documents,
			"limit":     limit,
			"offset":    offset,
		})
	}
}

// Get handles GET /<documents>/:id
func (h *DocumentHandlers) Get(kind models.DocumentKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		document, err := h.documentService.Get(c.Request().Context(), kind, id)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusOK, document)
	}
}

// Transition handles POST /<documents>/:id/<action>
func (h *DocumentHandlers) Transition(kind models.DocumentKind, action services.DocumentAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		document, err := h.documentService.Transition(c.Request().Context(), kind, id, action)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusOK, document)
	}
}
