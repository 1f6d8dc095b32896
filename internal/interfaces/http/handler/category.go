package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/backoffice/server/internal/application/catalog"
	"github.com/backoffice/server/internal/domain/shared"
	"github.com/backoffice/server/internal/interfaces/http/dto"
	"github.com/backoffice/server/internal/interfaces/http/middleware"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create creates a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single category by id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := bindObjectID(c)
	if !ok {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidCategoryID), dto.ErrCodeInvalidCategoryID, "Category id must be a 24-character hex string")
		return
	}

	result, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated category list
func (h *CategoryHandler) List(c *gin.Context) {
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

	result, err := h.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates an existing category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := bindObjectID(c)
	if !ok {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidCategoryID), dto.ErrCodeInvalidCategoryID, "Category id must be a 24-character hex string")
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := bindObjectID(c)
	if !ok {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidCategoryID), dto.ErrCodeInvalidCategoryID, "Category id must be a 24-character hex string")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.POST("", h.Create)
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}
