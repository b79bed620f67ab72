package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/models"
	"yieldvault/internal/pagination"
	"yieldvault/internal/yield"
)

// productService manages the investment product catalog.
type productService struct {
	db        *gorm.DB
	describer ProductDescriber
}

// NewProductService creates a new ProductServicer. describer writes the
// description for products created without one; it may be nil.
func NewProductService(db *gorm.DB, describer ProductDescriber) ProductServicer {
	return &productService{db: db, describer: describer}
}

// CreateProduct validates the product terms and stores the product.
func (s *productService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := yield.ValidateProductTerms(product); err != nil {
		return nil, err
	}
	if product.Description == "" && s.describer != nil {
		product.Description = s.describer.DescribeProduct(ctx, *product)
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *productService) GetProductByID(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &product, nil
}

// ListProducts returns a page of products, highest yield first.
func (s *productService) ListProducts(filter ProductFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()

	query := s.db.Model(&models.Product{})
	if filter.Type != nil {
		query = query.Where("investment_type = ?", *filter.Type)
	}
	if filter.RiskLevel != nil {
		query = query.Where("risk_level = ?", *filter.RiskLevel)
	}
	if filter.MinYield != nil {
		query = query.Where("annual_yield >= ?", *filter.MinYield)
	}
	if filter.MaxAmount != nil {
		query = query.Where("min_investment <= ?", *filter.MaxAmount)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var products []models.Product
	if err := query.Order("annual_yield DESC").Order("name ASC").
		Scopes(pagination.Paginate(page)).Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(products, page.Page, page.PageSize, total)
	return &resp, nil
}

// AllProducts returns the whole catalog, highest yield first.
func (s *productService) AllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("annual_yield DESC").Order("name ASC").Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return products, nil
}

// TopProducts returns up to limit products with the highest yield.
func (s *productService) TopProducts(limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 5
	}
	var products []models.Product
	if err := s.db.Order("annual_yield DESC").Order("name ASC").Limit(limit).Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return products, nil
}

// UpdateProduct changes the given fields. Existing investments keep the
// terms they were created with.
func (s *productService) UpdateProduct(id string, update ProductUpdate) (*models.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Type != nil {
		product.Type = *update.Type
	}
	if update.TenureMonths != nil {
		product.TenureMonths = *update.TenureMonths
	}
	if update.AnnualYield != nil {
		product.AnnualYield = *update.AnnualYield
	}
	if update.RiskLevel != nil {
		product.RiskLevel = *update.RiskLevel
	}
	if update.MinInvestment != nil {
		product.MinInvestment = *update.MinInvestment
	}
	if update.ClearMaxInvestment {
		product.MaxInvestment = nil
	} else if update.MaxInvestment != nil {
		product.MaxInvestment = update.MaxInvestment
	}
	if update.Description != nil {
		product.Description = *update.Description
	}

	if err := yield.ValidateProductTerms(product); err != nil {
		return nil, err
	}
	if err := s.db.Save(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return product, nil
}

// DeleteProduct soft-deletes a product. Investments that reference it keep
// their snapshot of its terms.
func (s *productService) DeleteProduct(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}
