package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"eventBridge/internal/config"
)

// Storage is a self-hosted stand-in for the managed events service. It
// answers the same queries and emits records in the vendor's nested shape.
type Storage struct {
	DB   *sql.DB
	hold time.Duration
	now  func() time.Time
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(connStr, dbCfg.ReservationHold)
}

func Open(connStr string, hold time.Duration) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if hold <= 0 {
		hold = 20 * time.Minute
	}

	return &Storage{DB: db, hold: hold, now: time.Now}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL,
	description       TEXT,
	slug              TEXT NOT NULL UNIQUE,
	status            TEXT NOT NULL DEFAULT 'SCHEDULED',
	start_date        TIMESTAMPTZ,
	end_date          TIMESTAMPTZ,
	location_name     TEXT,
	registration_type TEXT,
	main_image        TEXT
);

CREATE TABLE IF NOT EXISTS ticket_definitions (
	id       TEXT PRIMARY KEY,
	event_id TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	price    NUMERIC(12, 2) NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT 'USD',
	capacity INT NOT NULL CHECK (capacity >= 0)
);

CREATE TABLE IF NOT EXISTS reservations (
	id         UUID PRIMARY KEY,
	event_id   TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reservation_items (
	reservation_id       UUID NOT NULL REFERENCES reservations (id) ON DELETE CASCADE,
	ticket_definition_id TEXT NOT NULL REFERENCES ticket_definitions (id) ON DELETE CASCADE,
	quantity             INT NOT NULL CHECK (quantity > 0),
	PRIMARY KEY (reservation_id, ticket_definition_id)
);

CREATE TABLE IF NOT EXISTS rsvps (
	id         UUID PRIMARY KEY,
	event_id   TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (event_id, email)
);
`

func (s *Storage) InitSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// ExpireReservations removes pending reservations whose hold has run out and
// returns how many were removed.
func (s *Storage) ExpireReservations(ctx context.Context) (int64, error) {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM reservations WHERE expires_at < $1`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to expire reservations: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	return rowsAffected, nil
}
