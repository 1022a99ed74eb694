package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"iso", "2024-06-02", "2024-06-02", false},
		{"surrounding spaces", "  2024-12-31 ", "2024-12-31", false},
		{"leap day", "2024-02-29", "2024-02-29", false},
		{"not a leap year", "2023-02-29", "", true},
		{"slashes", "2024/06/02", "", true},
		{"with time", "2024-06-02T10:00:00Z", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDate(%q): got %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateAddDays(t *testing.T) {
	d := DateOf(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC))
	if got := d.AddDays(1).String(); got != "2025-01-01" {
		t.Errorf("AddDays(1): got %s, want 2025-01-01", got)
	}
	if got := d.AddDays(-31).String(); got != "2024-11-30" {
		t.Errorf("AddDays(-31): got %s, want 2024-11-30", got)
	}
	if !d.Before(d.AddDays(1)) || d.Before(d) {
		t.Errorf("Before: unexpected ordering around %s", d)
	}
}

func TestTaskJSON(t *testing.T) {
	due, _ := ParseDate("2024-06-02")
	b, err := json.Marshal(Task{ID: 1, Title: "Buy milk", Due: &due})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"title":"Buy milk","due":"2024-06-02","done":false}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}

	b, err = json.Marshal(Task{ID: 2, Title: "Call mechanic", Done: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want = `{"id":2,"title":"Call mechanic","done":true}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
