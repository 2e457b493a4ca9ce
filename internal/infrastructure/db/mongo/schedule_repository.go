package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindline/booking-api/internal/core/domain"
	"github.com/mindline/booking-api/internal/core/ports"
)

const collectionSchedules = "provider_schedules"

type ScheduleRepository struct {
	col *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{col: db.Collection(collectionSchedules)}
}

// FindByDate retrieves the provider's override for the given slot, or
// (nil, nil) when none exists.
func (r *ScheduleRepository) FindByDate(ctx context.Context, date time.Time, providerID string) (*domain.ScheduleOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.ScheduleOverride
	err := r.col.FindOne(ctx, bson.M{"provider_id": providerID, "date": date}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	o.Date = o.Date.Local()
	return &o, nil
}

// FindAllInDay lists the provider's overrides within one local calendar day.
func (r *ScheduleRepository) FindAllInDay(ctx context.Context, providerID string, year int, month time.Month, day int) ([]domain.ScheduleOverride, error) {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return r.findAllInRange(ctx, providerID, start, start.AddDate(0, 0, 1))
}

// FindAllInMonth lists the provider's overrides within one local calendar month.
func (r *ScheduleRepository) FindAllInMonth(ctx context.Context, providerID string, year int, month time.Month) ([]domain.ScheduleOverride, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return r.findAllInRange(ctx, providerID, start, start.AddDate(0, 1, 0))
}

func (r *ScheduleRepository) findAllInRange(ctx context.Context, providerID string, start, end time.Time) ([]domain.ScheduleOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        bson.M{"$gte": start, "$lt": end},
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domain.ScheduleOverride
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Date = out[i].Date.Local()
	}
	return out, nil
}

// Create inserts a new override. A duplicate on the unique
// (provider_id, date) index means an override already exists for
// the slot.
func (r *ScheduleRepository) Create(ctx context.Context, data ports.CreateScheduleData) (*domain.ScheduleOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now()
	o := domain.ScheduleOverride{
		ID:         uuid.NewString(),
		ProviderID: data.ProviderID,
		Date:       data.Date,
		Status:     data.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.col.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrScheduleConflict
		}
		return nil, err
	}
	return &o, nil
}

// Save persists status changes of an existing override.
func (r *ScheduleRepository) Save(ctx context.Context, override *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	override.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"status":     override.Status,
		"updated_at": override.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": override.ID}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrScheduleConflict
	}
	return override, nil
}

// EnsureIndexes creates the indexes on the schedules collection.
func (r *ScheduleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
