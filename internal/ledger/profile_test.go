package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/betopper/internal/curriculum"
)

var today = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.Local)

func TestStartSession(t *testing.T) {
	tests := []struct {
		name       string
		lastActive string
		streak     int
		wantStreak int
	}{
		{"yesterday extends", "2025-03-09", 4, 5},
		{"five days ago resets", "2025-03-05", 9, 1},
		{"today unchanged", "2025-03-10", 7, 7},
		{"absent resets", "", 3, 1},
		{"garbage resets", "Mon Mar 09 2025", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{Name: "Asha", Streak: tt.streak, LastActive: tt.lastActive, Points: 120}
			got := StartSession(p, today)
			if got.Streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", got.Streak, tt.wantStreak)
			}
			if got.LastActive != "2025-03-10" {
				t.Errorf("lastActive = %q, want 2025-03-10", got.LastActive)
			}
			if got.Points != 120 {
				t.Error("points changed by session start")
			}
		})
	}
}

func TestStartSession_SameDayIsIdentity(t *testing.T) {
	p := Profile{Name: "Asha", Streak: 3, LastActive: "2025-03-10"}
	if got := StartSession(p, today); got != p {
		t.Errorf("got %+v, want %+v", got, p)
	}
}

func TestStartSession_MonthBoundary(t *testing.T) {
	p := Profile{Streak: 2, LastActive: "2025-02-28"}
	got := StartSession(p, time.Date(2025, time.March, 1, 0, 5, 0, 0, time.Local))
	if got.Streak != 3 {
		t.Errorf("streak = %d, want 3", got.Streak)
	}
}

func TestAward_Sequence(t *testing.T) {
	p := Profile{Points: 0}
	var err error
	for _, amount := range []int{25, 5, 10} {
		p, err = Award(p, PointAward{Amount: amount, Reason: "test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if p.Points != 40 {
		t.Errorf("points = %d, want 40", p.Points)
	}
	if Level(p.Points) != 1 {
		t.Errorf("level = %d, want 1", Level(p.Points))
	}
	if LevelProgress(p.Points) != 8 {
		t.Errorf("progress = %v, want 8", LevelProgress(p.Points))
	}
}

func TestAward_RejectsNonPositive(t *testing.T) {
	p := Profile{Points: 10}
	for _, amount := range []int{0, -5} {
		got, err := Award(p, PointAward{Amount: amount, Reason: "x"})
		if err == nil {
			t.Errorf("amount %d: expected error", amount)
		}
		if got.Points != 10 {
			t.Errorf("amount %d: points changed to %d", amount, got.Points)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		points   int
		level    int
		progress float64
	}{
		{0, 1, 0},
		{499, 1, 99.8},
		{500, 2, 0},
		{1250, 3, 50},
		{100000, 201, 0},
	}
	for _, tt := range tests {
		if got := Level(tt.points); got != tt.level {
			t.Errorf("Level(%d) = %d, want %d", tt.points, got, tt.level)
		}
		if got := LevelProgress(tt.points); got != tt.progress {
			t.Errorf("LevelProgress(%d) = %v, want %v", tt.points, got, tt.progress)
		}
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, "Beginner"},
		{499, "Beginner"},
		{500, "Learner"},
		{1000, "Achiever"},
		{1999, "Scholar"},
		{2000, "Topper"},
		{100000, "Topper"},
	}
	for _, tt := range tests {
		if got := LevelName(Level(tt.points)); got != tt.want {
			t.Errorf("LevelName(Level(%d)) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestAwardTable(t *testing.T) {
	want := map[string]int{
		"Academic Consultation":  10,
		"Academic Research":      15,
		"Material Archiving":     5,
		"Question Set Generated": 25,
		"Concept Review":         5,
		"Resource Preparation":   20,
		"Problem Mastery":        10,
		"Reviewing Solutions":    5,
	}
	table := AwardTable()
	if len(table) != len(want) {
		t.Fatalf("table has %d entries, want %d", len(table), len(want))
	}
	for _, e := range table {
		if want[e.Award.Reason] != e.Award.Amount {
			t.Errorf("%s: amount %d, want %d", e.Award.Reason, e.Award.Amount, want[e.Award.Reason])
		}
	}
}

func TestChatAward(t *testing.T) {
	for n := 0; n <= 6; n++ {
		a, ok := ChatAward(n)
		wantOK := n > 0 && n%2 == 0
		if ok != wantOK {
			t.Errorf("ChatAward(%d) ok = %v, want %v", n, ok, wantOK)
		}
		if ok && a != AwardChat {
			t.Errorf("ChatAward(%d) = %+v", n, a)
		}
	}
}

func TestEnroll(t *testing.T) {
	p, err := Enroll(Details{Name: "  Asha ", Class: curriculum.Class10, Goal: "95%"}, 3, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Profile{
		Name: "Asha", Class: curriculum.Class10, Board: "CBSE", Goal: "95%",
		AvatarID: 3, Points: 0, Streak: 1, LastActive: "2025-03-10",
	}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}
}

func TestEnroll_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		d      Details
		avatar int
		field  string
	}{
		{"no name", Details{Class: curriculum.Class9}, 1, "name"},
		{"bad class", Details{Name: "A", Class: 8}, 1, "class"},
		{"avatar zero", Details{Name: "A", Class: curriculum.Class9}, 0, "avatar"},
		{"avatar six", Details{Name: "A", Class: curriculum.Class9}, 6, "avatar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Enroll(tt.d, tt.avatar, today)
			var pe *ProfileError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ProfileError, got %v", err)
			}
			if pe.Field != tt.field {
				t.Errorf("field = %q, want %q", pe.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidProfile) {
				t.Error("expected ErrInvalidProfile")
			}
		})
	}
}

func TestUpdateDetails_KeepsProgress(t *testing.T) {
	p := Profile{Name: "Asha", Class: curriculum.Class10, Board: "CBSE", AvatarID: 2, Points: 730, Streak: 6, LastActive: "2025-03-10"}
	got, err := UpdateDetails(p, Details{Name: "Asha R", Class: curriculum.Class11, Board: "ICSE", Goal: "JEE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Points != 730 || got.Streak != 6 || got.AvatarID != 2 || got.LastActive != "2025-03-10" {
		t.Errorf("progress fields changed: %+v", got)
	}
	if got.Name != "Asha R" || got.Class != curriculum.Class11 || got.Board != "ICSE" || got.Goal != "JEE" {
		t.Errorf("details not applied: %+v", got)
	}

	if _, err := UpdateDetails(p, Details{Name: "", Class: curriculum.Class10}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}
