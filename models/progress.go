package models

import "strings"

// Progress is the self-assessed mastery of a skill or tech stack.
// Values outside the three known levels are kept verbatim and rank as unknown.
type Progress string

const (
	ProgressBeginner     Progress = "BEGINNER"
	ProgressIntermediate Progress = "INTERMEDIATE"
	ProgressAdvanced     Progress = "ADVANCED"
)

// ParseProgress normalizes user input. An empty value defaults to BEGINNER.
func ParseProgress(s string) Progress {
	s = strings.TrimSpace(s)
	if s == "" {
		return ProgressBeginner
	}
	upper := Progress(strings.ToUpper(s))
	switch upper {
	case ProgressBeginner, ProgressIntermediate, ProgressAdvanced:
		return upper
	}
	return Progress(s)
}

// Level ranks the progress from 1 (beginner) to 3 (advanced); 0 means unknown.
func (p Progress) Level() int {
	switch p {
	case ProgressBeginner:
		return 1
	case ProgressIntermediate:
		return 2
	case ProgressAdvanced:
		return 3
	default:
		return 0
	}
}

func (p Progress) Known() bool {
	return p.Level() > 0
}
