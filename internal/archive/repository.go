// Package archive stores assembled attendance statistics for later reporting.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/attendchart/internal/database"
	"github.com/at-ishikawa/attendchart/internal/series"
	"github.com/at-ishikawa/attendchart/schemas"
)

// Record is the archived statistics of one month of a subject or class.
type Record struct {
	ID             int64     `db:"id"`
	Subject        string    `db:"subject"`
	ClassNumber    string    `db:"class_number"`
	Year           int       `db:"year"`
	Month          int       `db:"month"`
	TotalStudents  int       `db:"total_students"`
	TestedStudents int       `db:"tested_students"`
	AttendPercent  float64   `db:"attend_percent"`
	FetchedAt      time.Time `db:"fetched_at"`
}

// RecordsFromSeries converts every bucket of s into a record.
func RecordsFromSeries(subject, classNumber string, s series.Series, fetchedAt time.Time) []*Record {
	records := make([]*Record, 0, s.Len())
	for i, b := range s.Buckets {
		res := s.At(i)
		records = append(records, &Record{
			Subject:        subject,
			ClassNumber:    classNumber,
			Year:           b.Year,
			Month:          int(b.Month),
			TotalStudents:  res.TotalStudents,
			TestedStudents: res.TestedStudents,
			AttendPercent:  res.AttendPercent,
			FetchedAt:      fetchedAt.UTC(),
		})
	}
	return records
}

// Repository defines operations for archived attendance statistics.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, records []*Record) error
	FindBySubject(ctx context.Context, subject, classNumber string) ([]Record, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// EnsureSchema applies the embedded migrations. Every migration is idempotent.
func (r *DBRepository) EnsureSchema(ctx context.Context) error {
	statements, err := schemas.Statements()
	if err != nil {
		return fmt.Errorf("schemas.Statements > %w", err)
	}
	for _, statement := range statements {
		if _, err := r.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// Save upserts records; a month fetched again replaces the previous counts.
func (r *DBRepository) Save(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}

	return database.RunInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		columns := []string{"subject", "class_number", "year", "month", "total_students", "tested_students", "attend_percent", "fetched_at"}
		query := database.BuildMultiRowInsert("attendance_stats", columns, len(records)) +
			" ON DUPLICATE KEY UPDATE total_students = VALUES(total_students)," +
			" tested_students = VALUES(tested_students)," +
			" attend_percent = VALUES(attend_percent)," +
			" fetched_at = VALUES(fetched_at)"

		var args []interface{}
		for _, rec := range records {
			args = append(args, rec.Subject, rec.ClassNumber, rec.Year, rec.Month, rec.TotalStudents, rec.TestedStudents, rec.AttendPercent, rec.FetchedAt)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert attendance_stats: %w", err)
		}
		return nil
	})
}

// FindBySubject returns the archived months of a subject, or of one class when classNumber is set, oldest first.
func (r *DBRepository) FindBySubject(ctx context.Context, subject, classNumber string) ([]Record, error) {
	var records []Record
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM attendance_stats WHERE subject = ? AND class_number = ? ORDER BY year, month",
		subject, classNumber,
	); err != nil {
		return nil, fmt.Errorf("find attendance_stats of %s: %w", subject, err)
	}
	return records, nil
}
