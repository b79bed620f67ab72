package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"yieldvault/internal/logstats"
	"yieldvault/internal/models"
)

// NoErrorsMessage is the summary for a log set without failed requests.
const NoErrorsMessage = "No recent errors found. Your account activity looks healthy!"

const recentErrorLimit = 3

// RecentError is a failed request shown alongside the summary.
type RecentError struct {
	Endpoint string    `json:"endpoint"`
	Method   string    `json:"method"`
	Status   int       `json:"status"`
	Time     time.Time `json:"time"`
}

// ErrorSummary explains a user's recent failed requests.
type ErrorSummary struct {
	Summary      string        `json:"summary"`
	ErrorCount   int           `json:"error_count"`
	RecentErrors []RecentError `json:"recent_errors"`
}

// SummarizeErrors explains the failed requests in logs, newest first. Entries
// below status 400 are ignored; without any errors the generator is not
// consulted.
func (e *Engine) SummarizeErrors(ctx context.Context, logs []models.TransactionLog) ErrorSummary {
	failed := make([]models.TransactionLog, 0, len(logs))
	for _, l := range logs {
		if logstats.IsError(l.StatusCode) {
			failed = append(failed, l)
		}
	}

	out := ErrorSummary{ErrorCount: len(failed), RecentErrors: make([]RecentError, 0, recentErrorLimit)}
	for i := 0; i < len(failed) && i < recentErrorLimit; i++ {
		out.RecentErrors = append(out.RecentErrors, RecentError{
			Endpoint: failed[i].Endpoint,
			Method:   failed[i].HTTPMethod,
			Status:   failed[i].StatusCode,
			Time:     failed[i].CreatedAt,
		})
	}

	if len(failed) == 0 {
		out.Summary = NoErrorsMessage
		return out
	}

	out.Summary = withFallback(ctx, e, CapabilityErrorSummary,
		func(ctx context.Context) (string, error) {
			return e.generate(ctx, errorSummaryPrompt(failed))
		},
		func() string { return summarizeErrors(failed) },
	)
	return out
}

// issue names the kind of problem a failed status code points at.
func issue(code int) string {
	switch {
	case code == 401 || code == 403:
		return "Authentication issues"
	case code == 400 || code == 422:
		return "Invalid requests"
	case code == 404:
		return "Missing resources"
	case logstats.Classify(code) == logstats.ServerError:
		return "Server problems"
	}
	return "Request errors"
}

func summarizeErrors(failed []models.TransactionLog) string {
	counts := make(map[string]int)
	for _, l := range failed {
		counts[issue(l.StatusCode)]++
	}
	issues := make([]string, 0, len(counts))
	for k := range counts {
		issues = append(issues, k)
	}
	sort.Slice(issues, func(i, j int) bool {
		if counts[issues[i]] != counts[issues[j]] {
			return counts[issues[i]] > counts[issues[j]]
		}
		return issues[i] < issues[j]
	})
	if len(issues) > 3 {
		issues = issues[:3]
	}

	noun := "errors"
	if len(failed) == 1 {
		noun = "error"
	}
	return fmt.Sprintf("Found %d recent %s. Common issues: %s. "+
		"If problems persist, try logging out and back in, or contact support.",
		len(failed), noun, strings.Join(issues, ", "))
}
