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

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

// FindByID retrieves an appointment by its id.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Appointment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return localized(&a), nil
}

// FindByDate retrieves the appointment occupying the given slot, or
// (nil, nil) when the slot is free.
func (r *AppointmentRepository) FindByDate(ctx context.Context, date time.Time, providerID string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Appointment
	err := r.col.FindOne(ctx, bson.M{"provider_id": providerID, "date": date}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return localized(&a), nil
}

// FindAllInDay lists the provider's appointments within one local
// calendar day.
func (r *AppointmentRepository) FindAllInDay(ctx context.Context, providerID string, year int, month time.Month, day int) ([]domain.Appointment, error) {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return r.findAllInRange(ctx, providerID, start, start.AddDate(0, 0, 1))
}

// FindAllInMonth lists the provider's appointments within one local
// calendar month.
func (r *AppointmentRepository) FindAllInMonth(ctx context.Context, providerID string, year int, month time.Month) ([]domain.Appointment, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return r.findAllInRange(ctx, providerID, start, start.AddDate(0, 1, 0))
}

func (r *AppointmentRepository) findAllInRange(ctx context.Context, providerID string, start, end time.Time) ([]domain.Appointment, error) {
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

	var out []domain.Appointment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		localized(&out[i])
	}
	return out, nil
}

// Create inserts a new appointment. A duplicate on the unique
// (provider_id, date) index means another booking won the slot.
func (r *AppointmentRepository) Create(ctx context.Context, data ports.CreateAppointmentData) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now()
	a := domain.Appointment{
		ID:         uuid.NewString(),
		UserID:     data.UserID,
		ProviderID: data.ProviderID,
		Date:       data.Date,
		Status:     data.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlotTaken
		}
		return nil, err
	}
	return &a, nil
}

// Save persists status changes of an existing appointment. The date is
// immutable after creation and is deliberately not written.
func (r *AppointmentRepository) Save(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	appointment.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"status":     appointment.Status,
		"updated_at": appointment.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": appointment.ID}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAppointmentNotFound
	}
	return appointment, nil
}

// EnsureIndexes creates the indexes on the appointments collection. The
// unique compound index on (provider_id, date) is what makes a slot
// exclusive under concurrent bookings.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// localized converts the stored UTC instant back into local time, so
// hour and day extraction upstream sees the calendar the slot was
// booked in.
func localized(a *domain.Appointment) *domain.Appointment {
	a.Date = a.Date.Local()
	return a
}
