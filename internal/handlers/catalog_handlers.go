package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/services"
)

// CatalogHandlers serves suppliers, customers, line codes and part categories
type CatalogHandlers struct {
	supplierService services.SupplierService
	customerService services.CustomerService
	lineCodeService services.LineCodeService
	categoryService services.CategoryService
	cascadeService  services.CascadeService
}

func NewCatalogHandlers(
	supplierService services.SupplierService,
	customerService services.CustomerService,
	lineCodeService services.LineCodeService,
	categoryService services.CategoryService,
	cascadeService services.CascadeService,
) *CatalogHandlers {
	return &CatalogHandlers{
		supplierService: supplierService,
		customerService: customerService,
		lineCodeService: lineCodeService,
		categoryService: categoryService,
		cascadeService:  cascadeService,
	}
}

// CounterpartyRequest is the payload for suppliers and customers. Balance is accounts
// payable for a supplier and accounts receivable for a customer.
type CounterpartyRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	Balance       *string `json:"balance"`
}

type LineCodeRequest struct {
	Code        string  `json:"code" validate:"required,max=20"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

func (r *CounterpartyRequest) supplier() (*models.Supplier, error) {
	balance, err := common.ParseOptionalMoney(r.Balance, "balance")
	if err != nil {
		return nil, err
	}
	return &models.Supplier{
		Name:            r.Name,
		ContactPerson:   r.ContactPerson,
		Phone:           r.Phone,
		Email:           r.Email,
		Address:         r.Address,
		AccountsPayable: balance,
	}, nil
}

func (r *CounterpartyRequest) customer() (*models.Customer, error) {
	balance, err := common.ParseOptionalMoney(r.Balance, "balance")
	if err != nil {
		return nil, err
	}
	return &models.Customer{
		Name:               r.Name,
		ContactPerson:      r.ContactPerson,
		Phone:              r.Phone,
		Email:              r.Email,
		Address:            r.Address,
		AccountsReceivable: balance,
	}, nil
}

// Suppliers

func (h *CatalogHandlers) CreateSupplier(c echo.Context) error {
	var req CounterpartyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	supplier, err := req.supplier()
	if err != nil {
		return respondError(c, err)
	}
	if err := h.supplierService.Create(c.Request().Context(), supplier); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, supplier)
}

func (h *CatalogHandlers) ListSuppliers(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	suppliers, err := h.supplierService.List(c.Request().Context(), c.QueryParam("q"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *CatalogHandlers) GetSupplier(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	supplier, err := h.supplierService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *CatalogHandlers) UpdateSupplier(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req CounterpartyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	supplier, err := req.supplier()
	if err != nil {
		return respondError(c, err)
	}
	supplier.ID = id
	if err := h.supplierService.Update(c.Request().Context(), supplier); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *CatalogHandlers) DeleteSupplier(c echo.Context) error {
	return deleteEntity(c, h.cascadeService, models.EntitySupplier)
}

// Customers

func (h *CatalogHandlers) CreateCustomer(c echo.Context) error {
	var req CounterpartyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	customer, err := req.customer()
	if err != nil {
		return respondError(c, err)
	}
	if err := h.customerService.Create(c.Request().Context(), customer); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CatalogHandlers) ListCustomers(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	customers, err := h.customerService.List(c.Request().Context(), c.QueryParam("q"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"customers": customers,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *CatalogHandlers) GetCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	customer, err := h.customerService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CatalogHandlers) UpdateCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req CounterpartyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	customer, err := req.customer()
	if err != nil {
		return respondError(c, err)
	}
	customer.ID = id
	if err := h.customerService.Update(c.Request().Context(), customer); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CatalogHandlers) DeleteCustomer(c echo.Context) error {
	return deleteEntity(c, h.cascadeService, models.EntityCustomer)
}

// Line codes

func (h *CatalogHandlers) CreateLineCode(c echo.Context) error {
	var req LineCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	lineCode := &models.LineCode{Code: req.Code, Name: req.Name, Description: req.Description}
	if err := h.lineCodeService.Create(c.Request().Context(), lineCode); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, lineCode)
}

func (h *CatalogHandlers) ListLineCodes(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	lineCodes, err := h.lineCodeService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"line_codes": lineCodes,
		"limit":      limit,
		"offset":     offset,
	})
}

func (h *CatalogHandlers) GetLineCode(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	lineCode, err := h.lineCodeService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lineCode)
}

func (h *CatalogHandlers) UpdateLineCode(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req LineCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	lineCode := &models.LineCode{ID: id, Code: req.Code, Name: req.Name, Description: req.Description}
	if err := h.lineCodeService.Update(c.Request().Context(), lineCode); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lineCode)
}

// DeleteLineCode has no forced path; force=true is answered with a validation error
func (h *CatalogHandlers) DeleteLineCode(c echo.Context) error {
	return deleteEntity(c, h.cascadeService, models.EntityLineCode)
}

// Categories

func (h *CatalogHandlers) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	category := &models.PartCategory{Name: req.Name, Description: req.Description}
	if err := h.categoryService.Create(c.Request().Context(), category); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandlers) ListCategories(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	categories, err := h.categoryService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"limit":      limit,
		"offset":     offset,
	})
}

func (h *CatalogHandlers) GetCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	category, err := h.categoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHandlers) UpdateCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	category := &models.PartCategory{ID: id, Name: req.Name, Description: req.Description}
	if err := h.categoryService.Update(c.Request().Context(), category); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHandlers) DeleteCategory(c echo.Context) error {
	return deleteEntity(c, h.cascadeService, models.EntityCategory)
}
