package model

import (
	"testing"
	"time"

	apperrors "roomly/pkg/errors"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid", at(14, 0), at(15, 0), false},
		{"start equals end", at(14, 0), at(14, 0), true},
		{"start after end", at(15, 0), at(14, 0), true},
		{"zero start", time.Time{}, at(15, 0), true},
		{"zero end", at(14, 0), time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInterval(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !apperrors.IsCode(err, apperrors.CodeInvalidInterval) {
					t.Errorf("expected code %s, got %v", apperrors.CodeInvalidInterval, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	booked, _ := NewInterval(at(14, 0), at(15, 0))

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical", at(14, 0), at(15, 0), true},
		{"starts inside", at(14, 30), at(15, 30), true},
		{"ends inside", at(13, 30), at(14, 30), true},
		{"fully contains", at(13, 0), at(16, 0), true},
		{"fully contained", at(14, 15), at(14, 45), true},
		{"touches at end", at(15, 0), at(16, 0), false},
		{"touches at start", at(13, 0), at(14, 0), false},
		{"strictly before", at(12, 0), at(13, 0), false},
		{"strictly after", at(16, 0), at(17, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := NewInterval(tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := booked.Overlaps(other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := other.Overlaps(booked); got != tt.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalIsFuture(t *testing.T) {
	iv, _ := NewInterval(at(14, 0), at(15, 0))

	if !iv.IsFuture(at(13, 59)) {
		t.Error("start after now should be future")
	}
	if iv.IsFuture(at(14, 0)) {
		t.Error("start equal to now is not strictly future")
	}
	if iv.IsFuture(at(14, 1)) {
		t.Error("start before now is not future")
	}
}

func TestIntervalElapsed(t *testing.T) {
	iv, _ := NewInterval(at(14, 0), at(15, 0))

	if iv.Elapsed(at(14, 59)) {
		t.Error("interval still running should not be elapsed")
	}
	if !iv.Elapsed(at(15, 0)) {
		t.Error("interval ending exactly now should be elapsed")
	}
	if !iv.Elapsed(at(15, 1)) {
		t.Error("interval fully in the past should be elapsed")
	}
}

func TestIntervalDuration(t *testing.T) {
	iv, _ := NewInterval(at(14, 0), at(15, 30))
	if got := iv.Duration(); got != 90*time.Minute {
		t.Errorf("Duration() = %v, want 90m", got)
	}
}
