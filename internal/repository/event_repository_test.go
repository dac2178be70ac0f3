package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"stagefront/internal/models"
)

func tourAggregate() *models.NormalizedEvent {
	start := time.Date(2026, 7, 1, 20, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 11, 2, 0, 0, 0, time.UTC)

	return &models.NormalizedEvent{
		Event: models.Event{
			ID:          42,
			Slug:        "summer-tour",
			Title:       "Summer Tour",
			StartTime:   start,
			EndTime:     end,
			IsTour:      true,
			IsPublished: true,
		},
		Artists: []models.EventArtistLink{
			{ArtistID: 7, OrderIndex: 0},
			{ArtistID: 3, OrderIndex: 1},
		},
		Stops: []models.EventStop{
			{City: "Berlin", Country: "Germany", StartTime: start, EndTime: start.Add(6 * time.Hour), OrderIndex: 0},
			{City: "Amsterdam", Country: "Netherlands", StartTime: end.Add(-6 * time.Hour), EndTime: end, OrderIndex: 1},
		},
	}
}

// Update must replace the stored artist and stop sets wholesale inside one
// transaction: delete everything, reinsert the submitted rows.
func TestEventUpdateReplacesArtistsAndStops(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	agg := tourAggregate()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE events SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM event_artists WHERE event_id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO event_artists`).
		WithArgs(int64(42), int64(7), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO event_artists`).
		WithArgs(int64(42), int64(3), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM event_stops WHERE event_id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO event_stops`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO event_stops`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewEventRepository(db)
	if _, err := repo.Update(context.Background(), agg); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A non-tour save clears any stored stops and inserts nothing.
func TestEventUpdateClearsStopsForNonTour(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	agg := tourAggregate()
	agg.Event.IsTour = false
	agg.Stops = nil

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE events SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM event_artists WHERE event_id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO event_artists`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO event_artists`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM event_stops WHERE event_id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewEventRepository(db)
	if _, err := repo.Update(context.Background(), agg); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEventUpdateMissingRowRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE events SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewEventRepository(db)
	if _, err := repo.Update(context.Background(), tourAggregate()); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
