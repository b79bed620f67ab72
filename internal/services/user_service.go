package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/models"
)

// userService reads user profiles provisioned by the auth service.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdateRiskAppetite changes the risk appetite used for recommendations and
// portfolio insights.
func (s *userService) UpdateRiskAppetite(id string, appetite models.RiskLevel) (*models.User, error) {
	if !appetite.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid risk appetite required")
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("risk_appetite", appetite).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.RiskAppetite = appetite
	return user, nil
}
