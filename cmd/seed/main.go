// Command seed loads a starter product catalog and demo users, then prints
// a bearer token for each user so the API can be explored right away.
package main

import (
	"fmt"
	"os"

	"yieldvault/internal/config"
	"yieldvault/internal/database"
	"yieldvault/internal/logger"
	"yieldvault/internal/middleware"
	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/yield"

	"gorm.io/gorm"
)

func bounded(maximum int64) *money.Amount {
	a := money.New(maximum)
	return &a
}

var seedProducts = []models.Product{
	{
		Name:          "Government Bond - 5Y",
		Type:          models.InvestmentTypeBond,
		TenureMonths:  60,
		AnnualYield:   4.5,
		RiskLevel:     models.RiskLow,
		MinInvestment: money.New(1000),
		MaxInvestment: bounded(100000),
		Description:   "Safe government-backed bonds with steady returns",
	},
	{
		Name:          "Fixed Deposit Premium",
		Type:          models.InvestmentTypeFixedDeposit,
		TenureMonths:  24,
		AnnualYield:   6.2,
		RiskLevel:     models.RiskLow,
		MinInvestment: money.New(5000),
		MaxInvestment: bounded(500000),
		Description:   "High-yield fixed deposit with guaranteed returns",
	},
	{
		Name:          "Equity Growth Fund",
		Type:          models.InvestmentTypeMutualFund,
		TenureMonths:  36,
		AnnualYield:   12.8,
		RiskLevel:     models.RiskHigh,
		MinInvestment: money.New(500),
		MaxInvestment: bounded(50000),
		Description:   "Diversified equity mutual fund for long-term growth",
	},
	{
		Name:          "S&P 500 ETF",
		Type:          models.InvestmentTypeETF,
		TenureMonths:  12,
		AnnualYield:   8.5,
		RiskLevel:     models.RiskModerate,
		MinInvestment: money.New(100),
		MaxInvestment: bounded(25000),
		Description:   "Track the S&P 500 index with low fees",
	},
	{
		Name:          "Corporate Bond Fund",
		Type:          models.InvestmentTypeBond,
		TenureMonths:  18,
		AnnualYield:   5.8,
		RiskLevel:     models.RiskModerate,
		MinInvestment: money.New(2000),
		MaxInvestment: bounded(75000),
		Description:   "Investment-grade corporate bonds portfolio",
	},
}

var seedUsers = []models.User{
	{FirstName: "Admin", LastName: "User", Email: "admin@example.com", RiskAppetite: models.RiskModerate},
	{FirstName: "John", LastName: "Doe", Email: "john@example.com", RiskAppetite: models.RiskModerate},
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	if err := seedCatalog(db); err != nil {
		return err
	}

	for i := range seedUsers {
		user := seedUsers[i]
		res := db.Where("email = ?", user.Email).FirstOrCreate(&user)
		if res.Error != nil {
			return fmt.Errorf("failed to seed user %s: %w", user.Email, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Infow("Created user", "email", user.Email)
		} else {
			log.Infow("User already exists", "email", user.Email)
		}

		token, err := middleware.GenerateToken(&user)
		if err != nil {
			return fmt.Errorf("failed to issue token for %s: %w", user.Email, err)
		}
		fmt.Printf("%s\t%s\n", user.Email, token)
	}

	var users, products int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Product{}).Count(&products)
	log.Infow("Seeding completed", "users", users, "products", products)
	return nil
}

func seedCatalog(db *gorm.DB) error {
	log := logger.Get()
	for i := range seedProducts {
		product := seedProducts[i]
		if err := yield.ValidateProductTerms(&product); err != nil {
			return fmt.Errorf("invalid seed product %s: %w", product.Name, err)
		}
		res := db.Where("name = ?", product.Name).FirstOrCreate(&product)
		if res.Error != nil {
			return fmt.Errorf("failed to seed product %s: %w", product.Name, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Infow("Created product", "name", product.Name)
		} else {
			log.Infow("Product already exists", "name", product.Name)
		}
	}
	return nil
}
