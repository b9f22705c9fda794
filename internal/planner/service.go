package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"backend-trafella/internal/itinerary"
	"backend-trafella/internal/metrics"
	"backend-trafella/internal/timeline"

	"github.com/google/uuid"
)

// Broadcaster fans committed changes out to a session's subscribers.
type Broadcaster interface {
	Broadcast(sessionID string, payload []byte)
}

type Update struct {
	Type    string `json:"type"`
	Op      string `json:"op"`
	Session string `json:"sessionId"`
	Day     int    `json:"day,omitempty"`
	Plan    Plan   `json:"plan"`
}

type Service struct {
	store   Store
	hub     Broadcaster
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(store Store, hub Broadcaster, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, hub: hub, log: logger, metrics: m, now: time.Now}
}

// Create seeds default times onto generated days and stores the result as
// both the current and the original plan.
func (s *Service) Create(ctx context.Context, destination string, days []itinerary.DayPlan) (Session, error) {
	var tooLong []string
	for i, d := range days {
		if len(d.Items) > MaxActivitiesPerDay {
			tooLong = append(tooLong, fmt.Sprintf("Day %d has %d activities, at most %d fit", i+1, len(d.Items), MaxActivitiesPerDay))
		}
	}
	if len(tooLong) > 0 {
		return Session{}, &ValidationError{Messages: tooLong}
	}
	plan := Seed(destination, days)
	sess := Session{
		ID:        uuid.NewString(),
		Current:   plan,
		Original:  plan.Clone(),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, err
	}
	s.log.Info("planner.created", "session", sess.ID, "destination", destination, "days", len(days))
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.store.Load(ctx, id)
}

// Reorder moves one activity within a day. Out-of-range or equal indices
// leave the session untouched.
func (s *Service) Reorder(ctx context.Context, id string, dayNumber, from, to int) (Session, error) {
	return s.edit(ctx, id, dayNumber, "reorder", func(d *Day) (bool, error) {
		return reorder(d, from, to), nil
	})
}

// UpdateTime edits one activity's window and reflows the rest of its day.
// Edits that leave the day invalid return a *ValidationError and are not
// saved.
func (s *Service) UpdateTime(ctx context.Context, id string, dayNumber int, activityID string, patch TimePatch) (Session, error) {
	return s.edit(ctx, id, dayNumber, "update_time", func(d *Day) (bool, error) {
		if err := updateTime(d, activityID, patch); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *Service) Validate(ctx context.Context, id string, dayNumber int) (timeline.ValidationResult, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return timeline.ValidationResult{}, err
	}
	d := sess.Current.day(dayNumber)
	if d == nil {
		return timeline.ValidationResult{}, fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
	}
	return timeline.Validate(d.schedule()), nil
}

// Reset restores the plan the session was created with.
func (s *Service) Reset(ctx context.Context, id string) (Session, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return Session{}, err
	}
	sess.Current = sess.Original.Clone()
	if err := s.commit(ctx, &sess, "reset", 0); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) edit(ctx context.Context, id string, dayNumber int, op string, apply func(*Day) (bool, error)) (Session, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return Session{}, err
	}
	d := sess.Current.day(dayNumber)
	if d == nil {
		return Session{}, fmt.Errorf("day %d: %w", dayNumber, ErrNotFound)
	}

	changed, err := apply(d)
	if err != nil {
		s.metrics.PlannerEdit(op, "rejected")
		s.log.Warn("planner.edit_rejected", "session", id, "op", op, "day", dayNumber, "error", err)
		return Session{}, err
	}
	if !changed {
		s.metrics.PlannerEdit(op, "noop")
		return sess, nil
	}
	if err := s.commit(ctx, &sess, op, dayNumber); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) commit(ctx context.Context, sess *Session, op string, dayNumber int) error {
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, *sess); err != nil {
		s.metrics.PlannerEdit(op, "error")
		return err
	}
	s.metrics.PlannerEdit(op, "ok")
	s.log.Info("planner.updated", "session", sess.ID, "op", op, "day", dayNumber)

	if s.hub == nil {
		return nil
	}
	payload, err := json.Marshal(Update{Type: "planner.updated", Op: op, Session: sess.ID, Day: dayNumber, Plan: sess.Current})
	if err != nil {
		return err
	}
	s.hub.Broadcast(sess.ID, payload)
	return nil
}
