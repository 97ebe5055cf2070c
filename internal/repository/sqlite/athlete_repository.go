package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/repository"
)

var athleteColumns = []string{"id", "first_name", "last_name", "birthdate", "location", "avatar", "created_at", "updated_at"}

type athleteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewAthleteRepository creates a new AthleteRepository implementation
func NewAthleteRepository(db *sql.DB) repository.AthleteRepository {
	return &athleteRepository{db: db, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAthlete(row rowScanner) (*models.Athlete, error) {
	var a models.Athlete
	var avatar sql.NullString
	if err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Birthdate, &a.Location, &avatar, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if avatar.Valid {
		a.Avatar = &avatar.String
	}
	return &a, nil
}

func (r *athleteRepository) Get(ctx context.Context, id string) (*models.Athlete, error) {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")
	log.Debug("getting athlete: id=%s", id)

	query, args, err := sqlBuilder.Select(athleteColumns...).From("athletes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	a, err := scanAthlete(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
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
	log.Debug("listing athletes")

	query, args, err := sqlBuilder.Select(athleteColumns...).
		From("athletes").
		OrderBy("last_name ASC", "first_name ASC", "id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
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
	log.Debug("found %d athletes", len(athletes))
	return athletes, rows.Err()
}

func (r *athleteRepository) Insert(ctx context.Context, a models.Athlete) (*models.Athlete, error) {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := r.now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	query, args, err := sqlBuilder.Insert("athletes").
		Columns(athleteColumns...).
		Values(a.ID, a.FirstName, a.LastName, a.Birthdate, a.Location, a.Avatar, a.CreatedAt, a.UpdatedAt).
		ToSql()
	if err != nil {
		log.Error("failed to build insert: %v", err)
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert athlete: %v", err)
		return nil, err
	}
	log.Debug("athlete inserted: id=%s", a.ID)
	return &a, nil
}

func (r *athleteRepository) Update(ctx context.Context, id string, u models.AthleteUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")
	log.Debug("updating athlete: id=%s avatar_changed=%t", id, u.Avatar != nil)

	stmt := sqlBuilder.Update("athletes").
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("birthdate", u.Birthdate).
		Set("location", u.Location).
		Set("updated_at", r.now().UTC()).
		Where(squirrel.Eq{"id": id})
	if u.Avatar != nil {
		stmt = stmt.Set("avatar", *u.Avatar)
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		log.Error("failed to build update: %v", err)
		return err
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to update athlete: %v", err)
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			log.Debug("athlete not found for update: id=%s", id)
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *athleteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
