package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	pkgAuth "github.com/glimmerco/lumiere/internal/pkg/auth"
	"github.com/glimmerco/lumiere/internal/server/http/dto"
	"github.com/glimmerco/lumiere/internal/server/http/middleware"
	"github.com/glimmerco/lumiere/internal/usecase"
)

// AdminHandler serves the admin console endpoints.
type AdminHandler struct {
	facade    AdminFacade
	uploadDir string
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade, uploadDir string) *AdminHandler {
	return &AdminHandler{facade: facade, uploadDir: uploadDir}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	token, err := h.facade.Login(req.Password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		writeError(c, err)
		return
	}

	middleware.SetAdminSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles POST /api/admin/logout.
func (h *AdminHandler) Logout(c *gin.Context) {
	middleware.ClearAdminSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Products handles GET /api/admin/products.
func (h *AdminHandler) Products(c *gin.Context) {
	products, err := h.facade.AdminProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toProductResponses(products)})
}

// Product handles GET /api/admin/products/:id.
func (h *AdminHandler) Product(c *gin.Context) {
	product, err := h.facade.AdminProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), model.Product{
		SKU:            req.SKU,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		MetalType:      req.MetalType,
		Gemstone:       req.Gemstone,
		Weight:         req.Weight,
		Images:         req.Images,
		StockQuantity:  req.StockQuantity,
		IsFeatured:     req.IsFeatured,
		IsBundle:       req.IsBundle,
		BundleDiscount: req.BundleDiscount,
		MinPrice:       req.MinPrice,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := h.facade.UpdateProduct(c.Request.Context(), c.Param("id"), model.ProductUpdate{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		Images:      req.Images,
		IsBundle:    req.IsBundle,
		MinPrice:    req.MinPrice,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.facade.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := "img-" + uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// Upload handles POST /api/admin/upload for a single image.
func (h *AdminHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}
	url, err := h.saveUpload(c, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// BulkImageUpload handles POST /api/admin/products/bulk-image-upload.
// Uploaded filenames are matched against product image placeholders.
func (h *AdminHandler) BulkImageUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images uploaded"})
		return
	}

	uploads := make([]usecase.UploadedImage, 0, len(form.File["images"]))
	for _, file := range form.File["images"] {
		url, err := h.saveUpload(c, file)
		if err != nil {
			writeError(c, err)
			return
		}
		uploads = append(uploads, usecase.UploadedImage{Name: filepath.Base(file.Filename), URL: url})
	}

	result, err := h.facade.MatchProductImages(c.Request.Context(), uploads)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportCSV handles POST /api/admin/products/csv-upload.
func (h *AdminHandler) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No CSV file uploaded"})
		return
	}
	reader, err := file.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer reader.Close()

	result, err := h.facade.ImportProductsCSV(c.Request.Context(), reader)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"created": result.Created,
		"updated": result.Updated,
		"total":   result.Total,
		"errors":  result.Errors,
	})
}

// GenerateDescription handles POST /api/admin/products/:id/generate-description.
func (h *AdminHandler) GenerateDescription(c *gin.Context) {
	// every option is optional, an empty body means defaults
	var req dto.GenerateDescriptionRequest
	_ = c.ShouldBindJSON(&req)

	description, err := h.facade.GenerateDescription(c.Request.Context(), c.Param("id"), ai.GenerateOptions{
		AgentID:   req.AgentID,
		Tone:      req.Tone,
		Language:  req.Language,
		Keywords:  req.Keywords,
		MaxLength: req.MaxLength,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description})
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, toOrderResponse(order, nil))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	count, err := h.facade.ProductCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, dto.StatsResponse{})
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{Products: count})
}

// Health handles GET /api/admin/health.
func (h *AdminHandler) Health(c *gin.Context) {
	storage := "memory"
	if h.facade.DatabaseConfigured() {
		storage = "postgres"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": storage})
}

// SystemInfo handles GET /api/admin/system/info.
func (h *AdminHandler) SystemInfo(c *gin.Context) {
	db := "not_configured"
	if h.facade.DatabaseConfigured() {
		db = "connected"
	}
	c.JSON(http.StatusOK, dto.SystemInfoResponse{
		Runtime: runtime.Version(),
		Env:     gin.Mode(),
		DB:      db,
	})
}

// Integration handles GET /api/admin/config/:service.
func (h *AdminHandler) Integration(c *gin.Context) {
	service := c.Param("service")
	integration, err := h.facade.Integration(c.Request.Context(), service)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.IntegrationResponse{
				Service: service,
				Config:  json.RawMessage(`{}`),
			})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IntegrationResponse{
		Service:   integration.Service,
		Config:    integration.Config,
		IsActive:  integration.IsActive,
		UpdatedAt: integration.UpdatedAt,
	})
}

// UpdateIntegration handles POST /api/admin/config/:service.
func (h *AdminHandler) UpdateIntegration(c *gin.Context) {
	var req dto.UpdateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	integration, err := h.facade.UpdateIntegration(c.Request.Context(), c.Param("service"), req.Config, req.IsActive)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IntegrationResponse{
		Service:   integration.Service,
		Config:    integration.Config,
		IsActive:  integration.IsActive,
		UpdatedAt: integration.UpdatedAt,
	})
}

// ChatSettings handles GET /api/admin/settings/chat.
func (h *AdminHandler) ChatSettings(c *gin.Context) {
	integration, err := h.facade.Integration(c.Request.Context(), usecase.ServiceChat)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.ChatSettings{})
			return
		}
		writeError(c, err)
		return
	}

	var settings dto.ChatSettings
	_ = json.Unmarshal(integration.Config, &settings)
	settings.Enabled = integration.IsActive
	c.JSON(http.StatusOK, settings)
}

// UpdateChatSettings handles POST /api/admin/settings/chat.
func (h *AdminHandler) UpdateChatSettings(c *gin.Context) {
	var settings dto.ChatSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cfg, err := json.Marshal(dto.ChatSettings{PropertyID: settings.PropertyID, WidgetID: settings.WidgetID})
	if err != nil {
		writeError(c, err)
		return
	}
	if _, err := h.facade.UpdateIntegration(c.Request.Context(), usecase.ServiceChat, cfg, settings.Enabled); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SyncShopify handles POST /api/admin/shopify/sync.
func (h *AdminHandler) SyncShopify(c *gin.Context) {
	count, err := h.facade.SyncShopify(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// PushToShopify handles POST /api/admin/shopify/push/:id.
func (h *AdminHandler) PushToShopify(c *gin.Context) {
	created, err := h.facade.PushToShopify(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": created.ID, "title": created.Title})
}
