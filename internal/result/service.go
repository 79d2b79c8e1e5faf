package result

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gpa-service/internal/auth"
	"gpa-service/internal/gpa"
	"gpa-service/internal/graduation"
	"gpa-service/internal/registration"
)

var ErrNoCourses = errors.New("cannot save a result without courses")

// Publisher sends result-saved events (NATS/Kafka).
type Publisher interface {
	Publish(ctx context.Context, value interface{}) error
	Close() error
}

type Service struct {
	repo      Repository
	publisher Publisher
	logger    *slog.Logger
}

// NewService creates the snapshot service. publisher may be nil; events are
// then disabled.
func NewService(repo Repository, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Save recomputes the summary and verdict for the given course list and
// appends a snapshot. The event publish is fire-and-forget: a failed publish
// is logged, never surfaced.
func (s *Service) Save(ctx context.Context, matric string, courses []registration.Course) (*Result, error) {
	if err := auth.ValidateMatric(matric); err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}

	summary := gpa.Compute(courses)
	verdict := graduation.Evaluate(courses, summary)

	result := &Result{
		MatricNumber: matric,
		Courses:      courses,
		GPA:          summary.GPA,
		Status:       string(verdict.Status),
		Description:  verdict.Description,
		SavedAt:      time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to append result: %w", err)
	}

	if s.publisher != nil {
		event := SavedEvent{
			MatricNumber: result.MatricNumber,
			GPA:          result.GPA,
			Status:       result.Status,
			SavedAt:      result.SavedAt,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish result-saved event", "error", err)
		}
	}

	return result, nil
}

// History returns the student's snapshot sequence, oldest first.
func (s *Service) History(ctx context.Context, matric string) ([]Result, error) {
	if err := auth.ValidateMatric(matric); err != nil {
		return nil, err
	}
	return s.repo.ListByMatric(ctx, matric)
}

// RestoreLatest loads the most recent snapshot into the session store and
// reports whether anything was restored. Storage failures degrade to an
// empty session: the service keeps working without persistence.
func (s *Service) RestoreLatest(ctx context.Context, matric string, store *registration.Store) bool {
	results, err := s.repo.ListByMatric(ctx, matric)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load saved results, starting empty session", "error", err)
		return false
	}
	if len(results) == 0 {
		return false
	}

	latest := results[len(results)-1]
	store.ReplaceAll(latest.Courses)
	return true
}
