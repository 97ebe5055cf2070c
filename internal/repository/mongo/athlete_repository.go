// Package mongo implements the athlete record store on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/repository"
)

const collectionName = "athletes"

// Connect dials uri and verifies the deployment is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

type athleteRepository struct {
	col *mongo.Collection
	now func() time.Time
}

// NewAthleteRepository stores athletes in db's "athletes" collection and
// makes sure the name index exists.
func NewAthleteRepository(ctx context.Context, db *mongo.Database) (repository.AthleteRepository, error) {
	col := db.Collection(collectionName)
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create athlete index: %w", err)
	}
	return &athleteRepository{col: col, now: time.Now}, nil
}

func (r *athleteRepository) Get(ctx context.Context, id string) (*models.Athlete, error) {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")

	var a models.Athlete
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		log.Debug("athlete not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get athlete: %v", err)
		return nil, err
	}
	return &a, nil
}

func (r *athleteRepository) List(ctx context.Context) ([]models.Athlete, error) {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")

	opts := options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("failed to list athletes: %v", err)
		return nil, err
	}
	defer cur.Close(ctx)

	athletes := []models.Athlete{}
	if err := cur.All(ctx, &athletes); err != nil {
		log.Error("failed to decode athletes: %v", err)
		return nil, err
	}
	return athletes, nil
}

func (r *athleteRepository) Insert(ctx context.Context, a models.Athlete) (*models.Athlete, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	// Mongo keeps millisecond precision.
	now := r.now().UTC().Truncate(time.Millisecond)
	a.CreatedAt, a.UpdatedAt = now, now

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		logger.FromContext(ctx).WithPrefix("athlete_repo").Error("failed to insert athlete: %v", err)
		return nil, err
	}
	return &a, nil
}

func (r *athleteRepository) Update(ctx context.Context, id string, u models.AthleteUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("athlete_repo")

	set := bson.M{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"birthdate":  u.Birthdate,
		"location":   u.Location,
		"updated_at": r.now().UTC(),
	}
	if u.Avatar != nil {
		set["avatar"] = *u.Avatar
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Error("failed to update athlete: %v", err)
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *athleteRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}
