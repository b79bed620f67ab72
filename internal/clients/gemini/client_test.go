package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewClient_Options(t *testing.T) {
	c, err := NewClient(context.Background(), "test-key", WithModel("gemini-test"), WithLogger(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Model() != "gemini-test" {
		t.Errorf("expected gemini-test, got %s", c.Model())
	}
	if c.logger == nil {
		t.Error("a nil logger option must keep the default logger")
	}
}

func TestExtractText(t *testing.T) {
	t.Run("joins text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "Hello, "}, {Text: "investor."}}},
			}},
		}
		got, err := extractText(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Hello, investor." {
			t.Errorf("unexpected text %q", got)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		if _, err := extractText(&genai.GenerateContentResponse{}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("no text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{}}}}},
		}
		if _, err := extractText(resp); err == nil {
			t.Error("expected error")
		}
	})
}
