package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/hateshield/internal/domain"
)

func TestRelativeAge(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3*time.Hour - 59*time.Minute), "3h ago"},
		{"days", now.Add(-6 * 24 * time.Hour), "6d ago"},
		{"beyond a week", now.Add(-8 * 24 * time.Hour), "2026-03-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.RelativeAge(tt.ts, now); got != tt.want {
				t.Errorf("RelativeAge() = %q, want %q", got, tt.want)
			}
		})
	}
}
