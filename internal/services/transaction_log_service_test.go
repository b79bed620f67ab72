package services

import (
	"testing"
	"time"

	"yieldvault/internal/clock"
	"yieldvault/internal/metrics"
	"yieldvault/internal/models"
	"yieldvault/internal/testutil"
)

func TestRecordLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionLogService(db, clock.Fixed(testutil.FixedNow()), nil)

	entry := &models.TransactionLog{Endpoint: "/api/v1/products", HTTPMethod: "GET", StatusCode: 200}
	testutil.AssertNoError(t, svc.Record(entry))
	if entry.ID == "" {
		t.Error("expected generated ID")
	}
	if !entry.CreatedAt.Equal(testutil.FixedNow()) {
		t.Errorf("expected timestamp from clock, got %v", entry.CreatedAt)
	}

	var count int64
	db.Model(&models.TransactionLog{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 log, got %d", count)
	}
}

func TestListLogs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionLogService(db, clock.Fixed(testutil.FixedNow()), nil)
	user := testutil.CreateTestUser(t, db)
	now := testutil.FixedNow()

	testutil.CreateTestLog(t, db, &user.ID, "GET", "/api/v1/products", 200, "", now.Add(-3*time.Hour))
	testutil.CreateTestLog(t, db, &user.ID, "POST", "/api/v1/investments", 400, "Minimum investment required is $1,000.00", now.Add(-2*time.Hour))
	newest := testutil.CreateTestLog(t, db, &user.ID, "GET", "/api/v1/investments/x", 404, "Investment not found", now.Add(-time.Hour))
	testutil.CreateTestLog(t, db, nil, "GET", "/health", 200, "", now)

	t.Run("user_newest_first", func(t *testing.T) {
		logs, err := svc.List(LogFilter{UserID: &user.ID})
		testutil.AssertNoError(t, err)
		if len(logs) != 3 {
			t.Fatalf("expected 3 logs, got %d", len(logs))
		}
		if logs[0].ID != newest.ID {
			t.Errorf("expected newest first, got %s", logs[0].Endpoint)
		}
	})

	t.Run("errors_only", func(t *testing.T) {
		logs, err := svc.List(LogFilter{UserID: &user.ID, ErrorsOnly: true})
		testutil.AssertNoError(t, err)
		if len(logs) != 2 {
			t.Errorf("expected 2 errors, got %d", len(logs))
		}
	})

	t.Run("method_and_status", func(t *testing.T) {
		method := "POST"
		status := 400
		logs, err := svc.List(LogFilter{Method: &method, StatusCode: &status})
		testutil.AssertNoError(t, err)
		if len(logs) != 1 || logs[0].Endpoint != "/api/v1/investments" {
			t.Errorf("unexpected logs %v", logs)
		}
	})

	t.Run("since_and_limit", func(t *testing.T) {
		since := now.Add(-90 * time.Minute)
		logs, err := svc.List(LogFilter{Since: &since})
		testutil.AssertNoError(t, err)
		if len(logs) != 2 {
			t.Errorf("expected 2 recent logs, got %d", len(logs))
		}

		logs, err = svc.List(LogFilter{Limit: 1})
		testutil.AssertNoError(t, err)
		if len(logs) != 1 {
			t.Errorf("expected limit 1, got %d", len(logs))
		}
	})
}

func TestLogSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionLogService(db, clock.Fixed(testutil.FixedNow()), nil)
	user := testutil.CreateTestUser(t, db)
	now := testutil.FixedNow()

	testutil.CreateTestLog(t, db, &user.ID, "GET", "/api/v1/products", 200, "", now.Add(-time.Hour))
	testutil.CreateTestLog(t, db, &user.ID, "GET", "/api/v1/products", 200, "", now.Add(-2*time.Hour))
	testutil.CreateTestLog(t, db, &user.ID, "GET", "/api/v1/products", 200, "", now.Add(-3*time.Hour))
	testutil.CreateTestLog(t, db, &user.ID, "POST", "/api/v1/investments", 400, "Amount must be a positive number", now.Add(-4*time.Hour))
	testutil.CreateTestLog(t, db, &user.ID, "GET", "/api/v1/products", 500, "boom", now.AddDate(0, 0, -10))

	summary, err := svc.Summary(user.ID, 7)
	testutil.AssertNoError(t, err)
	if summary.Total != 4 {
		t.Fatalf("expected 4 logs in window, got %d", summary.Total)
	}
	if summary.SuccessRate != 75 || summary.ErrorRate != 25 {
		t.Errorf("expected 75/25, got %v/%v", summary.SuccessRate, summary.ErrorRate)
	}
	if len(summary.TopErrorEndpoints) != 1 || summary.TopErrorEndpoints[0].Key != "/api/v1/investments" {
		t.Errorf("unexpected top error endpoints %v", summary.TopErrorEndpoints)
	}

	wide, err := svc.Summary(user.ID, 30)
	testutil.AssertNoError(t, err)
	if wide.Total != 5 {
		t.Errorf("expected 5 logs in 30 days, got %d", wide.Total)
	}

	other, err := svc.Summary(testutil.CreateTestUser(t, db).ID, 0)
	testutil.AssertNoError(t, err)
	if other.Total != 0 || other.SuccessRate != 0 {
		t.Errorf("expected empty summary, got %+v", other)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	collector := metrics.New()
	svc := NewTransactionLogService(db, clock.Fixed(testutil.FixedNow()), collector)
	now := testutil.FixedNow()

	testutil.CreateTestLog(t, db, nil, "GET", "/a", 200, "", now.AddDate(0, 0, -100))
	testutil.CreateTestLog(t, db, nil, "GET", "/b", 200, "", now.AddDate(0, 0, -91))
	keep := testutil.CreateTestLog(t, db, nil, "GET", "/c", 200, "", now.AddDate(0, 0, -1))

	cutoff := now.AddDate(0, 0, -90)
	purged, err := svc.PurgeOlderThan(cutoff)
	testutil.AssertNoError(t, err)
	if purged != 2 {
		t.Errorf("expected 2 purged, got %d", purged)
	}

	again, err := svc.PurgeOlderThan(cutoff)
	testutil.AssertNoError(t, err)
	if again != 0 {
		t.Errorf("expected second purge to remove nothing, got %d", again)
	}

	var remaining []models.TransactionLog
	db.Find(&remaining)
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Errorf("expected only the recent log to remain, got %d", len(remaining))
	}
}
