package result

import (
	"context"
	"time"

	"gpa-service/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Append(ctx context.Context, result *Result) error
	ListByMatric(ctx context.Context, matric string) ([]Result, error)
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

// Append inserts a new snapshot at the end of the student's sequence. Prior
// snapshots are never updated.
func (r *repository) Append(ctx context.Context, result *Result) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(result).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "results", time.Since(start), err)

	return err
}

// ListByMatric returns the full snapshot sequence for a student, oldest
// first. An unknown matric number yields an empty slice, not an error.
func (r *repository) ListByMatric(ctx context.Context, matric string) ([]Result, error) {
	start := time.Now()
	var results []Result
	err := r.db.NewSelect().
		Model(&results).
		Where("matric_number = ?", matric).
		Order("id ASC").
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "results", time.Since(start), err)

	return results, err
}
