package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{9 * time.Second, "0:09"},
		{61 * time.Second, "1:01"},
		{10 * time.Minute, "10:00"},
		{time.Hour + 5*time.Second, "1:00:05"},
		{2*time.Hour + 34*time.Minute + 56*time.Second, "2:34:56"},
		{-3 * time.Second, "0:00"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.d); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
