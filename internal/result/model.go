package result

import (
	"time"

	"gpa-service/internal/registration"

	"github.com/uptrace/bun"
)

// Result is one saved snapshot of a student's registration and its computed
// outcome. Snapshots are append-only: the sequence for a matric number is
// never reordered or overwritten, and the last element is the current one.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID           int64                 `bun:"id,pk,autoincrement" json:"id"`
	MatricNumber string                `bun:"matric_number,notnull" json:"matricNumber"`
	Courses      []registration.Course `bun:"courses,type:jsonb,notnull" json:"courses"`
	GPA          float64               `bun:"gpa,notnull" json:"gpa"`
	Status       string                `bun:"status,notnull" json:"status"`
	Description  string                `bun:"description,notnull" json:"description"`
	SavedAt      time.Time             `bun:"saved_at,notnull,default:current_timestamp" json:"savedAt"`
}

// SavedEvent is published after a snapshot write succeeds.
type SavedEvent struct {
	MatricNumber string    `json:"matricNumber"`
	GPA          float64   `json:"gpa"`
	Status       string    `json:"status"`
	SavedAt      time.Time `json:"savedAt"`
}
