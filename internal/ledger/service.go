package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/betopper/internal/logger"
	"github.com/abhisek/betopper/internal/store"
)

// ProfileKey is the key-value entry holding the serialized profile.
const ProfileKey = "betopper_user"

// ErrNotEnrolled is returned when no profile has been created yet.
var ErrNotEnrolled = errors.New("no learner profile; run enroll first")

// Notification is the transient notice raised after an award.
type Notification struct {
	Amount int
	Reason string
	Points int
}

// Notifier receives award notifications.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Service loads, mutates and persists the profile. It is meant to be used
// from a single goroutine.
type Service struct {
	kv        store.KVRepo
	eventRepo store.EventRepo
	log       *logger.Logger

	// Notifier is signalled after each applied award. May be nil.
	Notifier Notifier

	// Now supplies the current time; tests replace it.
	Now func() time.Time

	profile *Profile
	started bool
}

// NewService creates a ledger service. eventRepo and log may be nil.
func NewService(kv store.KVRepo, eventRepo store.EventRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		kv:        kv,
		eventRepo: eventRepo,
		log:       log,
		Now:       time.Now,
	}
}

// Load reads the stored profile. It returns ErrNotEnrolled when none exists.
func (s *Service) Load(ctx context.Context) (Profile, error) {
	if s.profile != nil {
		return *s.profile, nil
	}
	raw, ok, err := s.kv.Get(ctx, ProfileKey)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return Profile{}, ErrNotEnrolled
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	s.profile = &p
	return p, nil
}

// Begin loads the profile and applies the session-start streak transition
// once per Service lifetime, persisting any change.
func (s *Service) Begin(ctx context.Context) (Profile, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return Profile{}, err
	}
	if s.started {
		return p, nil
	}
	next := StartSession(p, s.Now())
	if next != p {
		if err := s.save(ctx, next); err != nil {
			return Profile{}, err
		}
		s.log.Debug("session started", "streak", next.Streak, "last_active", next.LastActive)
	}
	s.started = true
	return next, nil
}

// Enroll creates and stores a new profile, replacing any existing one.
func (s *Service) Enroll(ctx context.Context, d Details, avatarID int) (Profile, error) {
	p, err := Enroll(d, avatarID, s.Now())
	if err != nil {
		return Profile{}, err
	}
	if err := s.save(ctx, p); err != nil {
		return Profile{}, err
	}
	s.started = true
	s.log.Info("learner enrolled", "class", int(p.Class), "board", p.Board)
	return p, nil
}

// Update replaces the learner-editable fields of the stored profile.
func (s *Service) Update(ctx context.Context, d Details) (Profile, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return Profile{}, err
	}
	next, err := UpdateDetails(p, d)
	if err != nil {
		return Profile{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return Profile{}, err
	}
	return next, nil
}

// Award applies a point award, persists the profile, records an award
// event and signals the Notifier.
func (s *Service) Award(ctx context.Context, a PointAward) (Profile, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return Profile{}, err
	}
	next, err := Award(p, a)
	if err != nil {
		return Profile{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return Profile{}, err
	}

	// The profile is the source of truth; a lost event only thins history.
	if s.eventRepo != nil {
		if err := s.eventRepo.AppendAward(ctx, store.AwardEventData{
			EventID:     uuid.NewString(),
			Amount:      a.Amount,
			Reason:      a.Reason,
			PointsAfter: next.Points,
		}); err != nil {
			s.log.Warn("failed to record award event", "reason", a.Reason, "error", err)
		}
	}

	if s.Notifier != nil {
		s.Notifier.Notify(Notification{Amount: a.Amount, Reason: a.Reason, Points: next.Points})
	}
	return next, nil
}

// History returns recent award events, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]store.AwardEventRecord, error) {
	if s.eventRepo == nil {
		return nil, nil
	}
	return s.eventRepo.QueryAwards(ctx, store.QueryOpts{Limit: limit})
}

// Breakdown sums awarded points per reason.
func (s *Service) Breakdown(ctx context.Context) ([]store.ReasonTotal, error) {
	if s.eventRepo == nil {
		return nil, nil
	}
	return s.eventRepo.PointsByReason(ctx)
}

// Reset deletes the profile and its award history.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, ProfileKey); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if s.eventRepo != nil {
		if err := s.eventRepo.ClearAwards(ctx); err != nil {
			return fmt.Errorf("clear award history: %w", err)
		}
	}
	s.profile = nil
	s.started = false
	return nil
}

func (s *Service) save(ctx context.Context, p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Put(ctx, ProfileKey, raw); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	s.profile = &p
	return nil
}
