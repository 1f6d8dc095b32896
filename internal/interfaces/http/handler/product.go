package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/backoffice/server/internal/application/catalog"
	"github.com/backoffice/server/internal/domain/shared"
	"github.com/backoffice/server/internal/interfaces/http/dto"
	"github.com/backoffice/server/internal/interfaces/http/middleware"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single product by id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := bindObjectID(c)
	if !ok {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidProductID), dto.ErrCodeInvalidProductID, "Product id must be a 24-character hex string")
		return
	}

	result, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated product list
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.Normalize()

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Search = req.Search

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates an existing product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := bindObjectID(c)
	if !ok {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidProductID), dto.ErrCodeInvalidProductID, "Product id must be a 24-character hex string")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := bindObjectID(c)
	if !ok {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidProductID), dto.ErrCodeInvalidProductID, "Product id must be a 24-character hex string")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
	}
}
