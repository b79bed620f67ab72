package insight

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// MinPasswordLength is the length below which a password is "Too short".
const MinPasswordLength = 8

// PasswordAnalysis rates a password from 0 to 100.
type PasswordAnalysis struct {
	Score       int      `json:"score"`
	Feedback    []string `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// passwordProfile describes a password without revealing it.
type passwordProfile struct {
	Length     int
	HasUpper   bool
	HasLower   bool
	HasDigit   bool
	HasSpecial bool
}

func profilePassword(pw string) passwordProfile {
	p := passwordProfile{Length: utf8.RuneCountInString(pw)}
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			p.HasUpper = true
		case r >= 'a' && r <= 'z':
			p.HasLower = true
		case r >= '0' && r <= '9':
			p.HasDigit = true
		default:
			p.HasSpecial = true
		}
	}
	return p
}

// AnalyzePassword rates password strength. Only the character profile is
// sent to the generator, never the password itself.
func (e *Engine) AnalyzePassword(ctx context.Context, password string) PasswordAnalysis {
	profile := profilePassword(password)
	return withFallback(ctx, e, CapabilityPassword,
		func(ctx context.Context) (PasswordAnalysis, error) {
			var out PasswordAnalysis
			if err := e.generateJSON(ctx, passwordPrompt(profile), &out); err != nil {
				return PasswordAnalysis{}, err
			}
			if out.Score < 0 || out.Score > 100 {
				return PasswordAnalysis{}, malformed("score %d out of range", out.Score)
			}
			if out.Feedback == nil {
				out.Feedback = []string{}
			}
			if out.Suggestions == nil {
				out.Suggestions = []string{}
			}
			return out, nil
		},
		func() PasswordAnalysis { return scorePassword(profile) },
	)
}

// scorePassword is min(100, 8 per character + 15 per present upper, lower
// and digit class + 20 for a special character).
func scorePassword(p passwordProfile) PasswordAnalysis {
	score := p.Length * 8
	feedback := []string{}
	suggestions := []string{}

	if p.Length < MinPasswordLength {
		feedback = append(feedback, "Too short")
		suggestions = append(suggestions, fmt.Sprintf("Use at least %d characters", MinPasswordLength))
	}

	classes := []struct {
		present    bool
		weight     int
		missing    string
		suggestion string
	}{
		{p.HasUpper, 15, "No uppercase letters", "Add uppercase letters"},
		{p.HasLower, 15, "No lowercase letters", "Add lowercase letters"},
		{p.HasDigit, 15, "No numbers", "Add numbers"},
		{p.HasSpecial, 20, "No special characters", "Add special characters"},
	}
	for _, c := range classes {
		if c.present {
			score += c.weight
			continue
		}
		feedback = append(feedback, c.missing)
		suggestions = append(suggestions, c.suggestion)
	}

	return PasswordAnalysis{
		Score:       min(100, score),
		Feedback:    feedback,
		Suggestions: suggestions,
	}
}
