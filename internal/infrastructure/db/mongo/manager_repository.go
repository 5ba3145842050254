package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

const collectionManagers = "managers"

type ManagerRepository struct {
	col *mongo.Collection
}

func NewManagerRepository(db *mongo.Database) *ManagerRepository {
	return &ManagerRepository{col: db.Collection(collectionManagers)}
}

type managerDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *ManagerRepository) Create(ctx context.Context, m *domain.Manager) (*domain.Manager, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, managerDocument{Name: m.Name})
	if err != nil {
		return nil, fmt.Errorf("insert manager: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert manager: unexpected id type %T", res.InsertedID)
	}
	return &domain.Manager{ID: oid.Hex(), Name: m.Name}, nil
}

// FindByName matches the name exactly (case-sensitive).
func (r *ManagerRepository) FindByName(ctx context.Context, name string) (*domain.Manager, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *ManagerRepository) FindByID(ctx context.Context, id string) (*domain.Manager, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrManagerNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ManagerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.D{})
}

func (r *ManagerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Manager, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc managerDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrManagerNotFound
		}
		return nil, fmt.Errorf("find manager: %w", err)
	}
	return &domain.Manager{ID: doc.ID.Hex(), Name: doc.Name}, nil
}
