package util

import "testing"

func TestParseSize(t *testing.T) {
	const def = int64(7)
	tests := []struct {
		input string
		want  int64
	}{
		{"10MB", 10 << 20},
		{"10mb", 10 << 20},
		{"1.5M", 3 << 19},
		{"512KB", 512 << 10},
		{"512 kb", 512 << 10},
		{"2GB", 2 << 30},
		{"4096", 4096},
		{"100B", 100},
		{"  1KB ", 1024},
		{"", def},
		{"lots", def},
		{"-1MB", def},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseSize(tc.input, def); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("AKIAEXAMPLEKEY", 4); got != "AKIA***" {
		t.Errorf("got %q", got)
	}
	if got := MaskSecret("abc", 4); got != "***" {
		t.Errorf("short secrets are fully hidden, got %q", got)
	}
}
