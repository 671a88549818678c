package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aliouned/propfin/internal/domain/models"
)

// PropertyStore exposes read access to the property collection owned by the
// management domain.
type PropertyStore interface {
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	ListProperties(ctx context.Context) ([]models.Property, error)
}

// EntryStore persists and aggregates ledger facts.
type EntryStore interface {
	InsertEntry(ctx context.Context, entry *models.FinancialEntry) error
	SumExpenses(ctx context.Context, propertyID, category string, entryType models.EntryType) (float64, error)
}

// SnapshotStore persists monthly metric snapshots. Snapshots are keyed by
// (property_id, snapshot_date) so writing the same month twice replaces the
// existing row instead of appending a duplicate.
type SnapshotStore interface {
	UpsertSnapshot(ctx context.Context, snapshot *models.FinancialSnapshot) error
	SnapshotsForProperty(ctx context.Context, propertyID string, since time.Time) ([]models.FinancialSnapshot, error)
	RecentSnapshots(ctx context.Context, limit int64) ([]models.FinancialSnapshot, error)
}

// GoalStore persists financial goals, one per (property, metric type).
type GoalStore interface {
	GetGoal(ctx context.Context, propertyID string, goalType models.GoalType) (*models.FinancialGoal, error)
	UpsertGoal(ctx context.Context, goal *models.FinancialGoal) error
	ListOpenGoals(ctx context.Context) ([]models.FinancialGoal, error)
}

const (
	propertiesColl = "properties"
	entriesColl    = "financial_entries"
	snapshotsColl  = "financial_snapshots"
	goalsColl      = "financial_goals"
)

// MongoDBRepository implements every store interface on top of MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// EnsureIndexes creates the uniqueness index backing the one-snapshot-per-
// month invariant and the goal identity index.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection(snapshotsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "property_id", Value: 1}, {Key: "snapshot_date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create snapshot index: %w", err)
	}

	_, err = r.collection(goalsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "property_id", Value: 1}, {Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create goal index: %w", err)
	}

	return nil
}

// GetProperty fetches a single property by its identifier.
func (r *MongoDBRepository) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := r.collection(propertiesColl).FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find property %s: %w", id, err)
	}
	return &property, nil
}

// ListProperties returns every property in the portfolio.
func (r *MongoDBRepository) ListProperties(ctx context.Context) ([]models.Property, error) {
	cursor, err := r.collection(propertiesColl).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

// InsertEntry appends a ledger entry.
func (r *MongoDBRepository) InsertEntry(ctx context.Context, entry *models.FinancialEntry) error {
	if _, err := r.collection(entriesColl).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert financial entry: %w", err)
	}
	return nil
}

// SumExpenses aggregates the total amount of entries matching the given
// property, category and type.
func (r *MongoDBRepository) SumExpenses(ctx context.Context, propertyID, category string, entryType models.EntryType) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"property_id": propertyID,
			"category":    category,
			"type":        entryType,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.collection(entriesColl).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate %s expenses for %s: %w", category, propertyID, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode expense aggregation: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// UpsertSnapshot writes the snapshot for its (property, month) key,
// replacing any existing row for the same month.
func (r *MongoDBRepository) UpsertSnapshot(ctx context.Context, snapshot *models.FinancialSnapshot) error {
	filter := bson.M{
		"property_id":   snapshot.PropertyID,
		"snapshot_date": snapshot.SnapshotDate,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection(snapshotsColl).ReplaceOne(ctx, filter, snapshot, opts); err != nil {
		return fmt.Errorf("upsert snapshot for %s: %w", snapshot.PropertyID, err)
	}
	return nil
}

// SnapshotsForProperty returns the property's snapshots dated on or after
// since, newest first.
func (r *MongoDBRepository) SnapshotsForProperty(ctx context.Context, propertyID string, since time.Time) ([]models.FinancialSnapshot, error) {
	filter := bson.M{
		"property_id":   propertyID,
		"snapshot_date": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "snapshot_date", Value: -1}})

	cursor, err := r.collection(snapshotsColl).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find snapshots for %s: %w", propertyID, err)
	}
	defer cursor.Close(ctx)

	var snapshots []models.FinancialSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return snapshots, nil
}

// RecentSnapshots returns up to limit snapshots across all properties,
// newest first.
func (r *MongoDBRepository) RecentSnapshots(ctx context.Context, limit int64) ([]models.FinancialSnapshot, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "snapshot_date", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection(snapshotsColl).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recent snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snapshots []models.FinancialSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return snapshots, nil
}

// GetGoal fetches the goal for the given property and metric type.
func (r *MongoDBRepository) GetGoal(ctx context.Context, propertyID string, goalType models.GoalType) (*models.FinancialGoal, error) {
	var goal models.FinancialGoal
	filter := bson.M{"property_id": propertyID, "type": goalType}
	err := r.collection(goalsColl).FindOne(ctx, filter).Decode(&goal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find goal %s/%s: %w", propertyID, goalType, err)
	}
	return &goal, nil
}

// UpsertGoal writes the goal for its (property, type) key.
func (r *MongoDBRepository) UpsertGoal(ctx context.Context, goal *models.FinancialGoal) error {
	filter := bson.M{"property_id": goal.PropertyID, "type": goal.Type}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection(goalsColl).ReplaceOne(ctx, filter, goal, opts); err != nil {
		return fmt.Errorf("upsert goal %s/%s: %w", goal.PropertyID, goal.Type, err)
	}
	return nil
}

// ListOpenGoals returns every goal whose status is not terminal.
func (r *MongoDBRepository) ListOpenGoals(ctx context.Context) ([]models.FinancialGoal, error) {
	filter := bson.M{"status": bson.M{"$nin": bson.A{models.GoalAchieved, models.GoalMissed}}}

	cursor, err := r.collection(goalsColl).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list open goals: %w", err)
	}
	defer cursor.Close(ctx)

	var goals []models.FinancialGoal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	return goals, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
