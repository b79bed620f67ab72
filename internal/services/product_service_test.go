package services

import (
	"context"
	"testing"

	"yieldvault/internal/models"
	"yieldvault/internal/money"
	"yieldvault/internal/pagination"
	"yieldvault/internal/testutil"
)

type stubDescriber struct {
	calls int
}

func (d *stubDescriber) DescribeProduct(_ context.Context, p models.Product) string {
	d.calls++
	return "About " + p.Name
}

func TestCreateProduct(t *testing.T) {
	t.Run("generates_missing_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		describer := &stubDescriber{}
		svc := NewProductService(db, describer)

		p := testutil.NewTestProduct()
		p.Description = ""
		created, err := svc.CreateProduct(context.Background(), p)
		testutil.AssertNoError(t, err)
		if created.ID == "" {
			t.Error("expected generated ID")
		}
		if created.Description != "About "+p.Name {
			t.Errorf("unexpected description %q", created.Description)
		}
		if describer.calls != 1 {
			t.Errorf("expected 1 describer call, got %d", describer.calls)
		}
	})

	t.Run("keeps_given_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		describer := &stubDescriber{}
		svc := NewProductService(db, describer)

		created, err := svc.CreateProduct(context.Background(), testutil.NewTestProduct())
		testutil.AssertNoError(t, err)
		if created.Description != "Test product" {
			t.Errorf("unexpected description %q", created.Description)
		}
		if describer.calls != 0 {
			t.Errorf("expected no describer call, got %d", describer.calls)
		}
	})

	t.Run("invalid_terms", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)

		p := testutil.NewTestProduct()
		p.TenureMonths = 0
		_, err := svc.CreateProduct(context.Background(), p)
		testutil.AssertAppError(t, err, "INVALID_PRODUCT")

		var count int64
		db.Model(&models.Product{}).Count(&count)
		if count != 0 {
			t.Errorf("expected nothing stored, got %d rows", count)
		}
	})
}

func TestGetProductByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db, nil)
	product := testutil.CreateTestProduct(t, db)

	got, err := svc.GetProductByID(product.ID)
	testutil.AssertNoError(t, err)
	if got.Name != product.Name {
		t.Errorf("expected %s, got %s", product.Name, got.Name)
	}
	if !got.MinInvestment.Equal(money.New(1000)) {
		t.Errorf("expected min 1000, got %s", got.MinInvestment)
	}
	if got.MaxInvestment == nil || !got.MaxInvestment.Equal(money.New(100000)) {
		t.Errorf("expected max 100000, got %v", got.MaxInvestment)
	}

	_, err = svc.GetProductByID("missing")
	testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
}

func seedCatalog(t *testing.T, svc ProductServicer) {
	t.Helper()
	db := svc.(*productService).db
	testutil.CreateTestProductWith(t, db, func(p *models.Product) {
		p.Name = "Treasury"
		p.Type = models.InvestmentTypeBond
		p.AnnualYield = 4.5
	})
	testutil.CreateTestProductWith(t, db, func(p *models.Product) {
		p.Name = "Deposit"
		p.AnnualYield = 6
	})
	testutil.CreateTestProductWith(t, db, func(p *models.Product) {
		p.Name = "Growth"
		p.Type = models.InvestmentTypeMutualFund
		p.RiskLevel = models.RiskHigh
		p.AnnualYield = 12
		p.MinInvestment = money.New(5000)
	})
	testutil.CreateTestProductWith(t, db, func(p *models.Product) {
		p.Name = "Index"
		p.Type = models.InvestmentTypeETF
		p.RiskLevel = models.RiskModerate
		p.AnnualYield = 6
		p.MinInvestment = money.New(2500)
	})
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestListProducts(t *testing.T) {
	t.Run("ordered_by_yield_then_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)
		seedCatalog(t, svc)

		page, err := svc.ListProducts(ProductFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		want := []string{"Growth", "Deposit", "Index", "Treasury"}
		got := names(page.Data)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
		if page.TotalItems != 4 || page.Page != 1 || page.PageSize != pagination.DefaultPageSize {
			t.Errorf("unexpected page metadata %+v", page)
		}
	})

	t.Run("filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)
		seedCatalog(t, svc)

		risk := models.RiskLow
		page, err := svc.ListProducts(ProductFilter{RiskLevel: &risk}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected 2 low risk products, got %d", page.TotalItems)
		}

		kind := models.InvestmentTypeETF
		page, err = svc.ListProducts(ProductFilter{Type: &kind}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].Name != "Index" {
			t.Errorf("expected only Index, got %v", names(page.Data))
		}

		minYield := 6.0
		page, err = svc.ListProducts(ProductFilter{MinYield: &minYield}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 {
			t.Errorf("expected 3 products yielding at least 6%%, got %d", page.TotalItems)
		}

		budget := money.New(3000)
		page, err = svc.ListProducts(ProductFilter{MaxAmount: &budget}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 {
			t.Errorf("expected 3 affordable products, got %v", names(page.Data))
		}
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)
		seedCatalog(t, svc)

		page, err := svc.ListProducts(ProductFilter{}, pagination.PageRequest{Page: 2, PageSize: 3})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 || page.Data[0].Name != "Treasury" {
			t.Errorf("expected only Treasury on page 2, got %v", names(page.Data))
		}
		if page.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", page.TotalPages)
		}
	})
}

func TestTopProducts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db, nil)
	seedCatalog(t, svc)

	top, err := svc.TopProducts(2)
	testutil.AssertNoError(t, err)
	got := names(top)
	if len(got) != 2 || got[0] != "Growth" || got[1] != "Deposit" {
		t.Errorf("unexpected top products %v", got)
	}

	all, err := svc.AllProducts()
	testutil.AssertNoError(t, err)
	if len(all) != 4 {
		t.Errorf("expected 4 products, got %d", len(all))
	}
}

func TestUpdateProduct(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)
		product := testutil.CreateTestProduct(t, db)

		yield := 7.25
		updated, err := svc.UpdateProduct(product.ID, ProductUpdate{AnnualYield: &yield})
		testutil.AssertNoError(t, err)
		if updated.AnnualYield != 7.25 {
			t.Errorf("expected 7.25, got %v", updated.AnnualYield)
		}
		if updated.Name != product.Name {
			t.Errorf("expected name unchanged, got %s", updated.Name)
		}
	})

	t.Run("does_not_touch_investments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)
		user := testutil.CreateTestUser(t, db)
		product := testutil.CreateTestProduct(t, db)
		inv := testutil.CreateTestInvestment(t, db, user.ID, product, 5000, testutil.FixedNow())

		yield := 9.0
		_, err := svc.UpdateProduct(product.ID, ProductUpdate{AnnualYield: &yield})
		testutil.AssertNoError(t, err)

		var stored models.Investment
		db.First(&stored, "id = ?", inv.ID)
		if stored.AnnualYield != 6 || !stored.ExpectedReturn.Equal(money.New(5600)) {
			t.Errorf("investment terms changed: yield %v expected %s", stored.AnnualYield, stored.ExpectedReturn)
		}
	})

	t.Run("clears_max_investment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)
		product := testutil.CreateTestProduct(t, db)
		if product.MaxInvestment == nil {
			t.Fatal("fixture should carry a maximum")
		}

		updated, err := svc.UpdateProduct(product.ID, ProductUpdate{ClearMaxInvestment: true})
		testutil.AssertNoError(t, err)
		if updated.MaxInvestment != nil {
			t.Errorf("expected no maximum, got %s", updated.MaxInvestment)
		}

		reloaded, err := svc.GetProductByID(product.ID)
		testutil.AssertNoError(t, err)
		if reloaded.MaxInvestment != nil {
			t.Errorf("expected stored maximum to be cleared, got %s", reloaded.MaxInvestment)
		}

		other := money.New(250000)
		updated, err = svc.UpdateProduct(product.ID, ProductUpdate{MaxInvestment: &other, ClearMaxInvestment: true})
		testutil.AssertNoError(t, err)
		if updated.MaxInvestment != nil {
			t.Error("clearing must win over a new maximum")
		}
	})

	t.Run("invalid_terms", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)
		product := testutil.CreateTestProduct(t, db)

		yield := 150.0
		_, err := svc.UpdateProduct(product.ID, ProductUpdate{AnnualYield: &yield})
		testutil.AssertAppError(t, err, "INVALID_PRODUCT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db, nil)

		_, err := svc.UpdateProduct("missing", ProductUpdate{})
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})
}

func TestDeleteProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db, nil)
	product := testutil.CreateTestProduct(t, db)

	testutil.AssertNoError(t, svc.DeleteProduct(product.ID))

	_, err := svc.GetProductByID(product.ID)
	testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")

	err = svc.DeleteProduct(product.ID)
	testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
}
