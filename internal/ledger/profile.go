// Package ledger owns point, streak and level bookkeeping for the local
// learner profile. The functions in this file are pure: they take a
// Profile and return the updated value. Service performs persistence.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/betopper/internal/curriculum"
)

// DateLayout is the calendar-day format stored in Profile.LastActive.
const DateLayout = "2006-01-02"

// PointsPerLevel is the number of points between levels.
const PointsPerLevel = 500

// Avatar ids range from 1 to AvatarCount.
const AvatarCount = 5

// Profile is the learner's persisted state.
type Profile struct {
	Name       string                `json:"name"`
	Class      curriculum.ClassLevel `json:"class"`
	Board      string                `json:"board"`
	Goal       string                `json:"goal,omitempty"`
	AvatarID   int                   `json:"avatarId"`
	Points     int                   `json:"points"`
	Streak     int                   `json:"streak"`
	LastActive string                `json:"lastActive,omitempty"`
}

// Details are the learner-editable profile fields.
type Details struct {
	Name  string
	Class curriculum.ClassLevel
	Board string
	Goal  string
}

// ErrInvalidProfile is matched by every *ProfileError.
var ErrInvalidProfile = errors.New("invalid profile")

// ProfileError reports a rejected profile field.
type ProfileError struct {
	Field  string
	Reason string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid profile %s: %s", e.Field, e.Reason)
}

func (e *ProfileError) Is(target error) bool {
	return target == ErrInvalidProfile
}

// Enroll creates a fresh profile active today.
func Enroll(d Details, avatarID int, today time.Time) (Profile, error) {
	d, err := checkDetails(d)
	if err != nil {
		return Profile{}, err
	}
	if avatarID < 1 || avatarID > AvatarCount {
		return Profile{}, &ProfileError{Field: "avatar", Reason: fmt.Sprintf("%d is outside 1-%d", avatarID, AvatarCount)}
	}
	return Profile{
		Name:       d.Name,
		Class:      d.Class,
		Board:      d.Board,
		Goal:       d.Goal,
		AvatarID:   avatarID,
		Streak:     1,
		LastActive: today.Format(DateLayout),
	}, nil
}

// UpdateDetails replaces the editable fields. Points and streak are kept.
func UpdateDetails(p Profile, d Details) (Profile, error) {
	d, err := checkDetails(d)
	if err != nil {
		return p, err
	}
	p.Name = d.Name
	p.Class = d.Class
	p.Board = d.Board
	p.Goal = d.Goal
	return p, nil
}

func checkDetails(d Details) (Details, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Board = strings.TrimSpace(d.Board)
	d.Goal = strings.TrimSpace(d.Goal)
	if d.Name == "" {
		return d, &ProfileError{Field: "name", Reason: "must not be empty"}
	}
	if !d.Class.Valid() {
		return d, &ProfileError{Field: "class", Reason: fmt.Sprintf("%d is outside 9-12", d.Class)}
	}
	if d.Board == "" {
		d.Board = curriculum.DefaultBoard
	}
	return d, nil
}

// StartSession applies the once-per-session streak transition. Same day
// leaves the profile unchanged; yesterday extends the streak; anything
// older, or no record at all, restarts it at 1.
func StartSession(p Profile, today time.Time) Profile {
	day := today.Format(DateLayout)
	switch p.LastActive {
	case day:
		return p
	case today.AddDate(0, 0, -1).Format(DateLayout):
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActive = day
	return p
}

// Level is derived from points and never stored.
func Level(points int) int {
	return points/PointsPerLevel + 1
}

// levelNames titles levels 1 through 4; every higher level is "Topper".
var levelNames = []string{"Beginner", "Learner", "Achiever", "Scholar"}

// LevelName returns the title shown for a level.
func LevelName(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(levelNames) {
		return "Topper"
	}
	return levelNames[level-1]
}

// LevelProgress is the percentage (0-100) of the way through the current
// level.
func LevelProgress(points int) float64 {
	return float64(points%PointsPerLevel) / (PointsPerLevel / 100)
}
