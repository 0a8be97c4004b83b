package tokens

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApprox(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	}
	for _, tt := range tests {
		if got := (Approx{}).Count(tt.in); got != tt.want {
			t.Errorf("Approx.Count(%d chars) = %d, want %d", len(tt.in), got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	if got := Line(42); got != "Estimated tokens: 42" {
		t.Errorf("Line(42) = %q", got)
	}
}

func TestForecast_AppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputs", "tokenforecasts.log")

	first := Forecast{Path: path}
	for _, n := range []int{10, 20} {
		if err := first.Record(n); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	// A second run opens the same log and must not truncate it.
	second := Forecast{Path: path}
	if err := second.Record(30); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Estimated tokens: 10\nEstimated tokens: 20\nEstimated tokens: 30\n"
	if string(data) != want {
		t.Errorf("log = %q, want %q", data, want)
	}
}

func TestForecast_EmptyPath(t *testing.T) {
	if err := (Forecast{}).Record(5); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
