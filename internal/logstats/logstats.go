// Package logstats classifies recorded API outcomes and summarizes a set of
// transaction log entries.
package logstats

import (
	"sort"

	"yieldvault/internal/models"
	"yieldvault/internal/money"

	"github.com/shopspring/decimal"
)

const (
	// MessageGroupLength is how many leading characters of an error message
	// identify its group.
	MessageGroupLength = 100
	// TopLimit caps the top endpoint and message lists.
	TopLimit = 10
)

// Category is the standard class of an HTTP status code.
type Category string

const (
	Informational Category = "informational"
	Success       Category = "success"
	Redirect      Category = "redirect"
	ClientError   Category = "client_error"
	ServerError   Category = "server_error"
	Unknown       Category = "unknown"
)

// Classify maps a status code to its class by hundreds.
func Classify(code int) Category {
	switch {
	case code >= 100 && code < 200:
		return Informational
	case code >= 200 && code < 300:
		return Success
	case code >= 300 && code < 400:
		return Redirect
	case code >= 400 && code < 500:
		return ClientError
	case code >= 500 && code < 600:
		return ServerError
	}
	return Unknown
}

// IsError reports whether code counts as a failed request.
func IsError(code int) bool {
	return code >= 400
}

// Count is one row of a ranked list.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary describes a set of log entries.
type Summary struct {
	Total             int            `json:"total"`
	SuccessCount      int            `json:"success_count"`
	ErrorCount        int            `json:"error_count"`
	SuccessRate       float64        `json:"success_rate"`
	ErrorRate         float64        `json:"error_rate"`
	ByMethod          map[string]int `json:"by_method"`
	ByStatusCode      map[int]int    `json:"by_status_code"`
	TopErrorEndpoints []Count        `json:"top_error_endpoints"`
	TopErrorMessages  []Count        `json:"top_error_messages"`
}

// Summarize counts entries by method and status and ranks the endpoints and
// messages behind failed requests. Messages sharing their first
// MessageGroupLength characters are counted together.
func Summarize(logs []models.TransactionLog) Summary {
	s := Summary{
		Total:        len(logs),
		ByMethod:     make(map[string]int),
		ByStatusCode: make(map[int]int),
	}
	endpoints := make(map[string]int)
	messages := make(map[string]int)

	for i := range logs {
		l := &logs[i]
		s.ByMethod[l.HTTPMethod]++
		s.ByStatusCode[l.StatusCode]++
		if !IsError(l.StatusCode) {
			continue
		}
		s.ErrorCount++
		endpoints[l.Endpoint]++
		if l.ErrorMessage != nil && *l.ErrorMessage != "" {
			messages[MessageGroup(*l.ErrorMessage)]++
		}
	}
	s.SuccessCount = s.Total - s.ErrorCount

	total := decimal.NewFromInt(int64(s.Total))
	s.SuccessRate = money.Percent(decimal.NewFromInt(int64(s.SuccessCount)), total)
	s.ErrorRate = money.Percent(decimal.NewFromInt(int64(s.ErrorCount)), total)
	s.TopErrorEndpoints = top(endpoints, TopLimit)
	s.TopErrorMessages = top(messages, TopLimit)
	return s
}

// MessageGroup truncates msg to its first MessageGroupLength characters.
func MessageGroup(msg string) string {
	runes := []rune(msg)
	if len(runes) <= MessageGroupLength {
		return msg
	}
	return string(runes[:MessageGroupLength])
}

// top ranks counts by count descending, then key ascending.
func top(counts map[string]int, limit int) []Count {
	ranked := make([]Count, 0, len(counts))
	for k, n := range counts {
		ranked = append(ranked, Count{Key: k, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
