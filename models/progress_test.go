package models

import "testing"

func TestParseProgress(t *testing.T) {
	tests := []struct {
		in    string
		want  Progress
		level int
	}{
		{"", ProgressBeginner, 1},
		{"  ", ProgressBeginner, 1},
		{"beginner", ProgressBeginner, 1},
		{"Intermediate", ProgressIntermediate, 2},
		{"ADVANCED", ProgressAdvanced, 3},
		{"EXPERT", Progress("EXPERT"), 0},
	}

	for _, tt := range tests {
		got := ParseProgress(tt.in)
		if got != tt.want {
			t.Errorf("ParseProgress(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if got.Level() != tt.level {
			t.Errorf("ParseProgress(%q).Level() = %d, want %d", tt.in, got.Level(), tt.level)
		}
	}
}
