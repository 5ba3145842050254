package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

const collectionTimeslots = "timeslots"

type TimeslotRepository struct {
	col *mongo.Collection
}

func NewTimeslotRepository(db *mongo.Database) *TimeslotRepository {
	return &TimeslotRepository{col: db.Collection(collectionTimeslots)}
}

type timeslotDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Time     string             `bson:"time"`
	Customer string             `bson:"customer"`
}

func (d timeslotDocument) toDomain() domain.Timeslot {
	return domain.Timeslot{ID: d.ID.Hex(), Time: d.Time, Customer: d.Customer}
}

// FindAll returns every timeslot without sorting; callers see insertion order.
func (r *TimeslotRepository) FindAll(ctx context.Context) ([]domain.Timeslot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find timeslots: %w", err)
	}

	var docs []timeslotDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode timeslots: %w", err)
	}

	slots := make([]domain.Timeslot, len(docs))
	for i, d := range docs {
		slots[i] = d.toDomain()
	}
	return slots, nil
}

// FindByID treats a malformed id the same as an unknown one.
func (r *TimeslotRepository) FindByID(ctx context.Context, id string) (*domain.Timeslot, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTimeslotNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc timeslotDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTimeslotNotFound
		}
		return nil, fmt.Errorf("find timeslot: %w", err)
	}

	slot := doc.toDomain()
	return &slot, nil
}

// UpdateCustomer sets the customer and returns the document as written.
func (r *TimeslotRepository) UpdateCustomer(ctx context.Context, id, customer string) (*domain.Timeslot, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTimeslotNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc timeslotDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"customer": customer}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTimeslotNotFound
		}
		return nil, fmt.Errorf("update timeslot: %w", err)
	}

	slot := doc.toDomain()
	return &slot, nil
}

func (r *TimeslotRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.D{})
}

func (r *TimeslotRepository) InsertMany(ctx context.Context, slots []domain.Timeslot) error {
	if len(slots) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(slots))
	for i, s := range slots {
		docs[i] = timeslotDocument{Time: s.Time, Customer: s.Customer}
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert timeslots: %w", err)
	}
	return nil
}
