// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"yieldvault/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("investment_type", validateInvestmentType)
		_ = v.RegisterValidation("risk_level", validateRiskLevel)
		_ = v.RegisterValidation("investment_status", validateInvestmentStatus)
		_ = v.RegisterValidation("http_method", validateHTTPMethod)
	}
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	return models.InvestmentType(fl.Field().String()).Valid()
}

func validateRiskLevel(fl validator.FieldLevel) bool {
	return models.RiskLevel(fl.Field().String()).Valid()
}

func validateInvestmentStatus(fl validator.FieldLevel) bool {
	switch models.InvestmentStatus(fl.Field().String()) {
	case models.InvestmentActive, models.InvestmentMatured, models.InvestmentCancelled:
		return true
	}
	return false
}

func validateHTTPMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS":
		return true
	}
	return false
}
