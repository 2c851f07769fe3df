package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/services"
)

// Handlers groups every handler mounted under the versioned API
type Handlers struct {
	Parts     *PartHandlers
	Catalog   *CatalogHandlers
	Documents *DocumentHandlers
	Ledger    *LedgerHandlers
}

// RegisterRoutes mounts the inventory API on a version group
func RegisterRoutes(g *echo.Group, h *Handlers) {
	// Parts
	g.GET("/parts", h.Parts.ListParts)
	g.POST("/parts", h.Parts.CreatePart)
	g.GET("/parts/sku/:sku/sales-history", h.Parts.SalesHistory)
	g.GET("/parts/:id", h.Parts.GetPart)
	g.PUT("/parts/:id", h.Parts.UpdatePart)
	g.DELETE("/parts/:id", h.Parts.DeletePart)
	g.POST("/parts/:id/adjust", h.Parts.AdjustStock)
	g.POST("/parts/:id/archive", h.Parts.ArchivePart)
	g.POST("/parts/:id/restore", h.Parts.RestorePart)
	g.GET("/parts/:id/ledger", h.Parts.PartLedger)
	g.GET("/parts/:id/ledger/verify", h.Parts.VerifyPartLedger)

	// Suppliers and customers
	g.GET("/suppliers", h.Catalog.ListSuppliers)
	g.POST("/suppliers", h.Catalog.CreateSupplier)
	g.GET("/suppliers/:id", h.Catalog.GetSupplier)
	g.PUT("/suppliers/:id", h.Catalog.UpdateSupplier)
	g.DELETE("/suppliers/:id", h.Catalog.DeleteSupplier)

	g.GET("/customers", h.Catalog.ListCustomers)
	g.POST("/customers", h.Catalog.CreateCustomer)
	g.GET("/customers/:id", h.Catalog.GetCustomer)
	g.PUT("/customers/:id", h.Catalog.UpdateCustomer)
	g.DELETE("/customers/:id", h.Catalog.DeleteCustomer)

	// Line codes and categories
	g.GET("/line-codes", h.Catalog.ListLineCodes)
	g.POST("/line-codes", h.Catalog.CreateLineCode)
	g.GET("/line-codes/:id", h.Catalog.GetLineCode)
	g.PUT("/line-codes/:id", h.Catalog.UpdateLineCode)
	g.DELETE("/line-codes/:id", h.Catalog.DeleteLineCode)

	g.GET("/categories", h.Catalog.ListCategories)
	g.POST("/categories", h.Catalog.CreateCategory)
	g.GET("/categories/:id", h.Catalog.GetCategory)
	g.PUT("/categories/:id", h.Catalog.UpdateCategory)
	g.DELETE("/categories/:id", h.Catalog.DeleteCategory)

	// Documents
	registerDocumentRoutes(g.Group("/purchase-orders"), h.Documents, models.KindPurchaseOrder,
		services.ActionReceive, services.ActionCancel)
	registerDocumentRoutes(g.Group("/sales-invoices"), h.Documents, models.KindSalesInvoice,
		services.ActionCancel)
	registerDocumentRoutes(g.Group("/credits"), h.Documents, models.KindCredit,
		services.ActionCancel)
	registerDocumentRoutes(g.Group("/warranties"), h.Documents, models.KindWarranty,
		services.ActionApprove, services.ActionReject, services.ActionComplete, services.ActionCancel)

	// Ledger and alerts
	g.GET("/ledger", h.Ledger.ListLedger)
	g.GET("/alerts", h.Ledger.ListAlerts)
	g.POST("/alerts/:id/resolve", h.Ledger.ResolveAlert)
}

func registerDocumentRoutes(g *echo.Group, h *DocumentHandlers, kind models.DocumentKind, actions ...services.DocumentAction) {
	g.GET("", h.List(kind))
	g.POST("", h.Create(kind))
	g.GET("/:id", h.Get(kind))
	for _, action := range actions {
		g.POST("/:id/"+string(action), h.Transition(kind, action))
	}
}
