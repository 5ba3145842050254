package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

const collectionActivity = "booking_events"

// ActivityRepository stores the booking audit trail.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type activityDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	SlotID     string             `bson:"slot_id"`
	SlotTime   string             `bson:"slot_time"`
	Action     string             `bson:"action"`
	Customer   string             `bson:"customer,omitempty"`
	At         time.Time          `bson:"at"`
	RecordedAt time.Time          `bson:"recorded_at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, event *domain.BookingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDocument{
		SlotID:     event.SlotID,
		SlotTime:   event.SlotTime,
		Action:     string(event.Action),
		Customer:   event.Customer,
		At:         event.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert booking event: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}
	return nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]domain.BookingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find booking events: %w", err)
	}

	var docs []activityDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode booking events: %w", err)
	}

	events := make([]domain.BookingEvent, len(docs))
	for i, d := range docs {
		events[i] = domain.BookingEvent{
			ID:       d.ID.Hex(),
			SlotID:   d.SlotID,
			SlotTime: d.SlotTime,
			Action:   domain.BookingAction(d.Action),
			Customer: d.Customer,
			At:       d.At,
		}
	}
	return events, nil
}
