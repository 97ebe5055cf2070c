// Package postgres implements the athlete record store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var athleteColumns = []string{
	"id::text",
	"first_name",
	"last_name",
	"COALESCE(to_char(birthdate, 'YYYY-MM-DD'), '')",
	"location",
	"avatar",
	"created_at",
	"updated_at",
}

const schema = `
CREATE TABLE IF NOT EXISTS athletes (
    id          UUID PRIMARY KEY,
    first_name  TEXT NOT NULL,
    last_name   TEXT NOT NULL,
    birthdate   DATE,
    location    TEXT NOT NULL DEFAULT '',
    avatar      TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_athletes_name ON athletes (last_name, first_name);
`

// Connect opens a pool and verifies the server is reachable.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the athletes table when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

type athleteRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewAthleteRepository(pool *pgxpool.Pool) repository.AthleteRepository {
	return &athleteRepository{pool: pool, now: time.Now}
}

func scanAthlete(row pgx.Row) (*models.Athlete, error) {
	var a models.Athlete
	if err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Birthdate, &a.Location, &a.Avatar, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *athleteRepository) Get(ctx context.Context, id string) (*models.Athlete, error) {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")

	uid, err := uuid.Parse(id)
	if err != nil {
		log.Debug("athlete id is not a uuid, treating as absent: %s", id)
		return nil, nil
	}

	query, args, err := sqlBuilder.Select(athleteColumns...).From("athletes").Where(squirrel.Eq{"id": uid}).ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanAthlete(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debug("athlete not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get athlete: %v", err)
		return nil, err
	}
	return a, nil
}

func (r *athleteRepository) List(ctx context.Context) ([]models.Athlete, error) {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")

	query, args, err := sqlBuilder.Select(athleteColumns...).
		From("athletes").
		OrderBy("last_name ASC", "first_name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error("failed to list athletes: %v", err)
		return nil, err
	}
	defer rows.Close()

	athletes := []models.Athlete{}
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			log.Error("failed to scan athlete row: %v", err)
			return nil, err
		}
		athletes = append(athletes, *a)
	}
	return athletes, rows.Err()
}

func (r *athleteRepository) Insert(ctx context.Context, a models.Athlete) (*models.Athlete, error) {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")

	uid := uuid.New()
	if a.ID != "" {
		parsed, err := uuid.Parse(a.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid athlete id %q: %w", a.ID, err)
		}
		uid = parsed
	}
	a.ID = uid.String()
	now := r.now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	query, args, err := sqlBuilder.Insert("athletes").
		Columns("id", "first_name", "last_name", "birthdate", "location", "avatar", "created_at", "updated_at").
		Values(uid, a.FirstName, a.LastName, squirrel.Expr("NULLIF(?, '')::date", a.Birthdate), a.Location, a.Avatar, now, now).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		log.Error("failed to insert athlete: %v", err)
		return nil, err
	}
	return &a, nil
}

func (r *athleteRepository) Update(ctx context.Context, id string, u models.AthleteUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")

	uid, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrNotFound
	}

	stmt := sqlBuilder.Update("athletes").
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("birthdate", squirrel.Expr("NULLIF(?, '')::date", u.Birthdate)).
		Set("location", u.Location).
		Set("updated_at", r.now().UTC()).
		Where(squirrel.Eq{"id": uid})
	if u.Avatar != nil {
		stmt = stmt.Set("avatar", *u.Avatar)
	}
	query, args, err := stmt.ToSql()
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			log.Error("failed to update athlete: %v", err)
			return err
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *athleteRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
