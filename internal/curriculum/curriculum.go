// Package curriculum holds the closed vocabularies shared by prompt building
// and the learner profile: class levels, difficulty tiers, and exam boards.
package curriculum

import (
	"fmt"
	"strconv"
	"strings"
)

// ClassLevel is the school class a learner is enrolled in.
type ClassLevel int

const (
	Class9  ClassLevel = 9
	Class10 ClassLevel = 10
	Class11 ClassLevel = 11
	Class12 ClassLevel = 12
)

// AllClassLevels returns the supported class levels in ascending order.
func AllClassLevels() []ClassLevel {
	return []ClassLevel{Class9, Class10, Class11, Class12}
}

// Valid reports whether c is one of the supported class levels.
func (c ClassLevel) Valid() bool {
	return c >= Class9 && c <= Class12
}

// Junior reports whether c is a secondary (9-10) rather than senior
// secondary (11-12) class.
func (c ClassLevel) Junior() bool {
	return c == Class9 || c == Class10
}

func (c ClassLevel) String() string {
	return strconv.Itoa(int(c))
}

// ParseClassLevel parses "9".."12", optionally prefixed with "class".
func ParseClassLevel(s string) (ClassLevel, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "class"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid class level %q", s)
	}
	c := ClassLevel(n)
	if !c.Valid() {
		return 0, fmt.Errorf("class level %d is not supported (9-12)", n)
	}
	return c, nil
}

// Difficulty is the requested difficulty of generated practice questions.
type Difficulty string

const (
	DifficultyLow    Difficulty = "Low"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHigh   Difficulty = "High"
)

// AllDifficulties returns every difficulty from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyLow, DifficultyMedium, DifficultyHigh}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return true
	}
	return false
}

// ParseDifficulty accepts any casing of Low, Medium or High.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range AllDifficulties() {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid difficulty %q: must be Low, Medium or High", s)
}

// DefaultBoard is used when a learner does not pick a board at enrollment.
const DefaultBoard = "CBSE"

// Boards returns the exam boards offered at enrollment.
func Boards() []string {
	return []string{
		"CBSE", "ICSE", "Maharashtra State Board", "UP Board", "Bihar Board",
		"Karnataka Board", "Tamil Nadu Board", "West Bengal Board", "Others",
	}
}

// DefaultSubject is the subject preselected for a class.
func DefaultSubject(c ClassLevel) string {
	if c.Junior() {
		return "Science"
	}
	return "Physics"
}
