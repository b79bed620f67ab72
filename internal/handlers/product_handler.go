package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/pagination"
	"yieldvault/internal/services"
	"yieldvault/internal/yield"
)

// ProductHandler handles investment product catalog requests.
type ProductHandler struct {
	productService services.ProductServicer
	insightService services.InsightServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer, insightService services.InsightServicer) *ProductHandler {
	return &ProductHandler{productService: productService, insightService: insightService}
}

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	Name          string                `json:"name" binding:"required,min=1,max=200"`
	Type          models.InvestmentType `json:"investment_type" binding:"required,investment_type"`
	TenureMonths  int                   `json:"tenure_months" binding:"required,min=1,max=600"`
	AnnualYield   float64               `json:"annual_yield" binding:"required,gt=0,lt=100"`
	RiskLevel     models.RiskLevel      `json:"risk_level" binding:"required,risk_level"`
	MinInvestment *money.Amount         `json:"min_investment,omitempty" swaggertype:"number"`
	MaxInvestment *money.Amount         `json:"max_investment,omitempty" swaggertype:"number"`
	Description   string                `json:"description" binding:"max=2000"`
}

// UpdateProductRequest represents the request payload for updating a product.
// Omitted fields are left unchanged; clear_max_investment removes the upper
// bound and cannot be combined with max_investment.
type UpdateProductRequest struct {
	Name               *string                `json:"name" binding:"omitempty,min=1,max=200"`
	Type               *models.InvestmentType `json:"investment_type" binding:"omitempty,investment_type"`
	TenureMonths       *int                   `json:"tenure_months" binding:"omitempty,min=1,max=600"`
	AnnualYield        *float64               `json:"annual_yield" binding:"omitempty,gt=0,lt=100"`
	RiskLevel          *models.RiskLevel      `json:"risk_level" binding:"omitempty,risk_level"`
	MinInvestment      *money.Amount          `json:"min_investment" swaggertype:"number"`
	MaxInvestment      *money.Amount          `json:"max_investment" swaggertype:"number"`
	ClearMaxInvestment bool                   `json:"clear_max_investment"`
	Description        *string                `json:"description" binding:"omitempty,max=2000"`
}

// ListProductsQuery holds the catalog filters accepted as query parameters.
type ListProductsQuery struct {
	Type      string   `form:"type" binding:"omitempty,investment_type"`
	RiskLevel string   `form:"risk_level" binding:"omitempty,risk_level"`
	MinYield  *float64 `form:"min_yield" binding:"omitempty,gte=0"`
	MaxAmount string   `form:"max_amount"`
}

// TopProductsQuery holds the limit for the top products list.
type TopProductsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=20"`
}

// CreateProduct handles adding a product to the catalog.
// @Summary     Create product
// @Description Add an investment product to the catalog. A description is generated when none is given.
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-API-Key header string true "Catalog management key"
// @Param       request body CreateProductRequest true "Product details"
// @Success     201 {object} models.Product "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	product := &models.Product{
		Name:          req.Name,
		Type:          req.Type,
		TenureMonths:  req.TenureMonths,
		AnnualYield:   req.AnnualYield,
		RiskLevel:     req.RiskLevel,
		MinInvestment: yield.DefaultMinInvestment,
		MaxInvestment: req.MaxInvestment,
		Description:   req.Description,
	}
	if req.MinInvestment != nil {
		product.MinInvestment = *req.MinInvestment
	}

	created, err := h.productService.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListProducts handles listing the catalog.
// @Summary     List products
// @Description List investment products, highest yield first
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       type       query string false "Investment type"
// @Param       risk_level query string false "Risk level"
// @Param       min_yield  query number false "Minimum annual yield"
// @Param       max_amount query number false "Only products whose minimum investment is at most this amount"
// @Param       page       query int    false "Page number"
// @Param       page_size  query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Product] "Products"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter := services.ProductFilter{MinYield: query.MinYield}
	if query.Type != "" {
		kind := models.InvestmentType(query.Type)
		filter.Type = &kind
	}
	if query.RiskLevel != "" {
		risk := models.RiskLevel(query.RiskLevel)
		filter.RiskLevel = &risk
	}
	if query.MaxAmount != "" {
		amount, err := yield.ParseAmount(query.MaxAmount)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.MaxAmount = &amount
	}

	result, err := h.productService.ListProducts(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTopProducts handles listing the highest-yield products.
// @Summary     Top products
// @Description List the products with the highest annual yield
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Number of products (default 5)"
// @Success     200 {array}  models.Product "Products"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/top [get]
func (h *ProductHandler) GetTopProducts(c *gin.Context) {
	var query TopProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	products, err := h.productService.TopProducts(query.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetRecommendations handles personalised product recommendations.
// @Summary     Recommended products
// @Description Recommend products that suit the user's risk appetite and holdings
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Product "Recommended products"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/recommendations [get]
func (h *ProductHandler) GetRecommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	products, err := h.insightService.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles fetching one product.
// @Summary     Get product
// @Description Get an investment product by ID
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Product ID"
// @Success     200 {object} models.Product "Product"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles changing a product's terms.
// @Summary     Update product
// @Description Update an investment product. Existing investments keep their terms.
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-API-Key header string true "Catalog management key"
// @Param       id path string true "Product ID"
// @Param       request body UpdateProductRequest true "Fields to change"
// @Success     200 {object} models.Product "Product updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if req.ClearMaxInvestment && req.MaxInvestment != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"max_investment and clear_max_investment cannot be combined"))
		return
	}

	product, err := h.productService.UpdateProduct(id, services.ProductUpdate{
		Name:               req.Name,
		Type:               req.Type,
		TenureMonths:       req.TenureMonths,
		AnnualYield:        req.AnnualYield,
		RiskLevel:          req.RiskLevel,
		MinInvestment:      req.MinInvestment,
		MaxInvestment:      req.MaxInvestment,
		ClearMaxInvestment: req.ClearMaxInvestment,
		Description:        req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles removing a product from the catalog.
// @Summary     Delete product
// @Description Remove an investment product from the catalog. Existing investments are kept.
// @Tags        products
// @Security    BearerAuth
// @Param       X-API-Key header string true "Catalog management key"
// @Param       id path string true "Product ID"
// @Success     204 "Product deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
