package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	coursesRegistered metric.Int64Counter
	coursesRemoved    metric.Int64Counter
	gradesUpdated     metric.Int64Counter
	resultsSaved      metric.Int64Counter
	resultsRestored   metric.Int64Counter
	exportsGenerated  metric.Int64Counter

	Database *DatabaseMetrics
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.coursesRegistered, err = meter.Int64Counter(
		"gpa_service.courses.registered",
		metric.WithDescription("Total number of courses registered"),
		metric.WithUnit("{course}"),
	)
	if err != nil {
		return nil, err
	}

	m.coursesRemoved, err = meter.Int64Counter(
		"gpa_service.courses.removed",
		metric.WithDescription("Total number of courses removed"),
		metric.WithUnit("{course}"),
	)
	if err != nil {
		return nil, err
	}

	m.gradesUpdated, err = meter.Int64Counter(
		"gpa_service.grades.updated",
		metric.WithDescription("Total number of grade changes"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	m.resultsSaved, err = meter.Int64Counter(
		"gpa_service.results.saved",
		metric.WithDescription("Total number of result snapshots saved"),
		metric.WithUnit("{snapshot}"),
	)
	if err != nil {
		return nil, err
	}

	m.resultsRestored, err = meter.Int64Counter(
		"gpa_service.results.restored",
		metric.WithDescription("Total number of sessions restored from a saved snapshot"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	m.exportsGenerated, err = meter.Int64Counter(
		"gpa_service.exports.generated",
		metric.WithDescription("Total number of exports generated"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, err
	}

	database, err := NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}
	m.Database = database

	return m, nil
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{Database: &DatabaseMetrics{}}
}

func (m *Metrics) RecordCourseRegistered(ctx context.Context) {
	if m.coursesRegistered != nil {
		m.coursesRegistered.Add(ctx, 1)
	}
}

func (m *Metrics) RecordCourseRemoved(ctx context.Context) {
	if m.coursesRemoved != nil {
		m.coursesRemoved.Add(ctx, 1)
	}
}

func (m *Metrics) RecordGradeUpdated(ctx context.Context) {
	if m.gradesUpdated != nil {
		m.gradesUpdated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordResultSaved(ctx context.Context) {
	if m.resultsSaved != nil {
		m.resultsSaved.Add(ctx, 1)
	}
}

func (m *Metrics) RecordResultRestored(ctx context.Context) {
	if m.resultsRestored != nil {
		m.resultsRestored.Add(ctx, 1)
	}
}

// RecordExportGenerated records one export, labelled by format (pdf, card).
func (m *Metrics) RecordExportGenerated(ctx context.Context, format string) {
	if m.exportsGenerated != nil {
		m.exportsGenerated.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
	}
}
