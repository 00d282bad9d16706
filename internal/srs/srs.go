// Package srs implements the spaced-repetition interval model.
package srs

import (
	"fmt"
	"math"
	"strings"
)

// DefaultTargetRetention is the retention probability the interval is
// solved for when the caller does not supply one.
const DefaultTargetRetention = 0.9

// Grade is the recall-quality signal supplied after showing a card.
type Grade int

const (
	GradeEasy Grade = iota
	GradeNormal
	GradeHard
)

// String returns the storage form of a grade.
func (g Grade) String() string {
	switch g {
	case GradeEasy:
		return "EASY"
	case GradeNormal:
		return "NORMAL"
	case GradeHard:
		return "HARD"
	default:
		return fmt.Sprintf("Grade(%d)", int(g))
	}
}

// ParseGrade parses a grade from its storage form, case-insensitively.
func ParseGrade(value string) (Grade, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "EASY":
		return GradeEasy, nil
	case "NORMAL":
		return GradeNormal, nil
	case "HARD":
		return GradeHard, nil
	default:
		return 0, fmt.Errorf("unknown grade %q", value)
	}
}

// Stability multipliers per grade. Stability grows on recall and shrinks
// on a lapse but never reaches zero.
const (
	easyStabilityFactor   = 1.25
	normalStabilityFactor = 1.10
	hardStabilityFactor   = 0.85
)

// NextStability returns the stability after applying a grade.
func NextStability(stability float64, grade Grade) float64 {
	switch grade {
	case GradeEasy:
		return stability * easyStabilityFactor
	case GradeHard:
		return stability * hardStabilityFactor
	default:
		return stability * normalStabilityFactor
	}
}

// ComputeIntervalDays solves the exponential forgetting curve for the
// number of days until retention decays to targetRetention:
// interval = round(-stability * ln(targetRetention)), floored to 1.
func ComputeIntervalDays(stability, targetRetention float64) int {
	if targetRetention <= 0 || targetRetention >= 1 {
		targetRetention = DefaultTargetRetention
	}
	interval := int(math.Round(-stability * math.Log(targetRetention)))
	if interval < 1 {
		return 1
	}
	return interval
}
