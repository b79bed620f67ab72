package services

import (
	"time"

	"gorm.io/gorm"

	"yieldvault/internal/clock"
	apperrors "yieldvault/internal/errors"
	"yieldvault/internal/logstats"
	"yieldvault/internal/metrics"
	"yieldvault/internal/models"
)

const (
	// DefaultLogLimit caps List when no limit is given.
	DefaultLogLimit = 50
	// MaxLogLimit is the largest limit List honours.
	MaxLogLimit = 200
	// DefaultSummaryDays is the window Summary covers when days is not positive.
	DefaultSummaryDays = 7
	// MaxSummaryDays bounds the Summary window.
	MaxSummaryDays = 365
)

// transactionLogService records and analyses API transaction logs.
type transactionLogService struct {
	db      *gorm.DB
	clock   clock.Clock
	metrics *metrics.Collector
}

// NewTransactionLogService creates a new TransactionLogServicer. collector may be nil.
func NewTransactionLogService(db *gorm.DB, clk clock.Clock, collector *metrics.Collector) TransactionLogServicer {
	if clk == nil {
		clk = clock.System{}
	}
	return &transactionLogService{db: db, clock: clk, metrics: collector}
}

// Record stores one log entry, stamping it with the current time when unset.
func (s *transactionLogService) Record(entry *models.TransactionLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	if err := s.db.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns log entries matching filter, newest first.
func (s *transactionLogService) List(filter LogFilter) ([]models.TransactionLog, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > MaxLogLimit {
		limit = MaxLogLimit
	}

	query := s.db.Model(&models.TransactionLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Method != nil {
		query = query.Where("http_method = ?", *filter.Method)
	}
	if filter.StatusCode != nil {
		query = query.Where("status_code = ?", *filter.StatusCode)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", filter.Since.UTC())
	}
	if filter.ErrorsOnly {
		query = query.Where("status_code >= ?", 400)
	}

	logs := []models.TransactionLog{}
	if err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return logs, nil
}

// Summary aggregates the user's log entries of the last days days. An empty
// userID summarizes every entry.
func (s *transactionLogService) Summary(userID string, days int) (*logstats.Summary, error) {
	if days <= 0 {
		days = DefaultSummaryDays
	}
	if days > MaxSummaryDays {
		days = MaxSummaryDays
	}
	since := s.clock.Now().AddDate(0, 0, -days)

	query := s.db.Where("created_at >= ?", since.UTC())
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var logs []models.TransactionLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary := logstats.Summarize(logs)
	return &summary, nil
}

// PurgeOlderThan hard-deletes entries created before cutoff and reports how
// many were removed.
func (s *transactionLogService) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", cutoff.UTC()).Delete(&models.TransactionLog{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	s.metrics.LogsPurged(result.RowsAffected)
	return result.RowsAffected, nil
}
