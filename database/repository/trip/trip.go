package tripRepo

import (
	"context"
	"fmt"
	"time"

	"voyago/config"
	"voyago/database"
	"voyago/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TripRepository stores saved trips and itineraries.
type TripRepository interface {
	RecentTripRefs(ctx context.Context, userID string, limit int) ([]models.SavedTripRef, error)
	LatestItinerary(ctx context.Context, userID string) (*models.SavedItinerary, error)
	GetItinerary(ctx context.Context, id string) (*models.SavedItinerary, error)
	SaveItinerary(ctx context.Context, itinerary *models.SavedItinerary) error
}

// MongoTripRepo implements TripRepository using MongoDB.
type MongoTripRepo struct {
	coll *mongo.Collection
}

// NewMongoTripRepo creates a new TripRepository using MongoDB.
func NewMongoTripRepo() TripRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("trips")
	repo := &MongoTripRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoTripRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// RecentTripRefs returns lightweight refs to the user's most recent trips,
// newest first, for reference resolution in the interpreter.
func (r *MongoTripRepo) RecentTripRefs(ctx context.Context, userID string, limit int) ([]models.SavedTripRef, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"id": 1, "name": 1, "kind": 1})

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips for %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var refs []models.SavedTripRef
	for cursor.Next(ctx) {
		var doc struct {
			ID   string          `bson:"id"`
			Name string          `bson:"name"`
			Kind models.TripKind `bson:"kind"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		kind := doc.Kind
		if kind == "" {
			kind = models.TripKindItinerary
		}
		refs = append(refs, models.SavedTripRef{ID: doc.ID, Name: doc.Name, Kind: kind})
	}
	return refs, cursor.Err()
}

// LatestItinerary returns the user's most recent saved itinerary, or nil
// when they have none.
func (r *MongoTripRepo) LatestItinerary(ctx context.Context, userID string) (*models.SavedItinerary, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var itinerary models.SavedItinerary
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "kind": models.TripKindItinerary}, opts).Decode(&itinerary)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest itinerary for %s: %w", userID, err)
	}
	return &itinerary, nil
}

func (r *MongoTripRepo) GetItinerary(ctx context.Context, id string) (*models.SavedItinerary, error) {
	var itinerary models.SavedItinerary
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&itinerary)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch itinerary %s: %w", id, err)
	}
	return &itinerary, nil
}

func (r *MongoTripRepo) SaveItinerary(ctx context.Context, itinerary *models.SavedItinerary) error {
	if itinerary.ID == "" {
		itinerary.ID = uuid.NewString()
	}
	itinerary.CreatedAt = time.Now()

	doc := bson.M{
		"id":        itinerary.ID,
		"userId":    itinerary.UserID,
		"name":      itinerary.Name,
		"kind":      models.TripKindItinerary,
		"location":  itinerary.Location,
		"geo":       itinerary.Geo,
		"startDate": itinerary.StartDate,
		"days":      itinerary.Days,
		"createdAt": itinerary.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to save itinerary: %w", err)
	}
	return nil
}
