package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"-1.005", "-1.01"},
		{"2.675", "2.68"},
		{"600", "600"},
	}
	for _, tt := range tests {
		got := Round(decimal.RequireFromString(tt.in))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Round(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(decimal.NewFromInt(1), decimal.NewFromInt(3)); got != 33.33 {
		t.Errorf("expected 33.33, got %v", got)
	}
	if got := Percent(decimal.NewFromInt(2), decimal.NewFromInt(3)); got != 66.67 {
		t.Errorf("expected 66.67, got %v", got)
	}
	if got := Percent(decimal.NewFromInt(5), decimal.Zero); got != 0 {
		t.Errorf("expected 0 for zero total, got %v", got)
	}
}

func TestAmount_Format(t *testing.T) {
	tests := map[string]string{
		"1000":     "$1,000.00",
		"100000":   "$100,000.00",
		"5.5":      "$5.50",
		"1234.567": "$1,234.57",
	}
	for in, want := range tests {
		if got := MustParse(in).Format(); got != want {
			t.Errorf("Format(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestAmount_JSON(t *testing.T) {
	t.Run("marshals with two fraction digits", func(t *testing.T) {
		data, err := json.Marshal(map[string]Amount{"amount": MustParse("5600")})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != `{"amount":5600.00}` {
			t.Errorf("unexpected JSON %s", data)
		}
	})

	t.Run("accepts numbers and strings", func(t *testing.T) {
		var v struct {
			A Amount `json:"a"`
			B Amount `json:"b"`
		}
		if err := json.Unmarshal([]byte(`{"a":12.5,"b":"99.99"}`), &v); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !v.A.Equal(MustParse("12.5")) || !v.B.Equal(MustParse("99.99")) {
			t.Errorf("unexpected values %s %s", v.A, v.B)
		}
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		var a Amount
		if err := json.Unmarshal([]byte(`"abc"`), &a); err == nil {
			t.Error("expected error for non-numeric amount")
		}
	})
}

func TestAmount_Scan(t *testing.T) {
	inputs := []any{int64(5000), float64(5000), "5000.00", []byte("5000")}
	for _, in := range inputs {
		var a Amount
		if err := a.Scan(in); err != nil {
			t.Fatalf("Scan(%v): %v", in, err)
		}
		if !a.Equal(New(5000)) {
			t.Errorf("Scan(%v) = %s", in, a)
		}
	}

	var a Amount
	if err := a.Scan(nil); err != nil || !a.IsZero() {
		t.Errorf("Scan(nil) = %s, %v", a, err)
	}
}
