// internal/repository/mongo/blob_repo.go
package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const blobCollectionName = "kv"

// blobDocument is one stored key. The key doubles as the document _id.
type blobDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// BlobStore implements repository.BlobStore on a MongoDB collection.
type BlobStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoBlobStore wraps the kv collection of db. client may be nil when the
// caller owns the connection lifecycle.
func NewMongoBlobStore(client *mongo.Client, db *mongo.Database) *BlobStore {
	return &BlobStore{
		client:     client,
		collection: db.Collection(blobCollectionName),
	}
}

func (r *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc blobDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (r *BlobStore) Set(ctx context.Context, key string, value []byte) error {
	filter := bson.M{"_id": key}
	update := bson.M{
		"$set": bson.M{
			"value":     value,
			"updatedAt": time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *BlobStore) Remove(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects the client if this store owns one.
func (r *BlobStore) Close(context.Context) error {
	if r.client == nil {
		return nil
	}
	return DisconnectDB(r.client)
}

// EnsureBlobIndexes creates the updatedAt index used when inspecting recent writes.
func EnsureBlobIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "updatedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

// Collection exposes the underlying collection for index setup.
func (r *BlobStore) Collection() *mongo.Collection {
	return r.collection
}
