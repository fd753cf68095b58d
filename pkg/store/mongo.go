package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sarratt/treasury/pkg/config"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoDatabase   = "Treasury"
	mongoCollection = "documents"
	mongoDocumentID = "treasury"

	mongoTimeout = 10 * time.Second
)

// mongoDocument wraps the JSON-encoded treasury document. Guild IDs are
// free-form strings, so the document is stored as an opaque blob rather
// than as native BSON fields.
type mongoDocument struct {
	ID   string `bson:"_id"`
	Data []byte `bson:"data"`
}

// mongoStore persists the document in a MongoDB collection.
type mongoStore struct {
	mu     sync.Mutex
	client *mongo.Client
}

// newMongoStore connects to the MongoDB database named in the
// configuration and verifies the connection.
func newMongoStore(cfg *config.Config) (*mongoStore, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("TREASURY_MONGODB_URI must be set for the mongo store")
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}

	return &mongoStore{client: client}, nil
}

func (m *mongoStore) collection() *mongo.Collection {
	return m.client.Database(mongoDatabase).Collection(mongoCollection)
}

// Load reads the document, creating an empty one if it is absent.
func (m *mongoStore) Load(data any) error {
	log.Trace("--> Load")
	defer log.Trace("<-- Load")

	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var doc mongoDocument
	err := m.collection().FindOne(ctx, bson.D{{Key: "_id", Value: mongoDocumentID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		log.Warning("Treasury document not found, creating an empty document")
		doc = mongoDocument{ID: mongoDocumentID, Data: emptyDocument}
		if _, err := m.collection().InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("creating the treasury document: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("loading the treasury document: %w", err)
	}

	if err := json.Unmarshal(doc.Data, data); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptStorage, err)
	}
	return nil
}

// Save replaces the document completely.
func (m *mongoStore) Save(data any) error {
	log.Trace("--> Save")
	defer log.Trace("<-- Save")

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	doc := mongoDocument{ID: mongoDocumentID, Data: b}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection().ReplaceOne(ctx, bson.D{{Key: "_id", Value: mongoDocumentID}}, doc, opts); err != nil {
		return fmt.Errorf("saving the treasury document: %w", err)
	}
	return nil
}

// Healthy verifies the document still exists and parses.
func (m *mongoStore) Healthy() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var doc mongoDocument
	err := m.collection().FindOne(ctx, bson.D{{Key: "_id", Value: mongoDocumentID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		log.Warning("Treasury document not found, creating an empty document")
		doc = mongoDocument{ID: mongoDocumentID, Data: emptyDocument}
		_, err = m.collection().InsertOne(ctx, doc)
	}
	if err != nil {
		return fmt.Errorf("checking the treasury document: %w", err)
	}
	if !json.Valid(doc.Data) {
		return ErrCorruptStorage
	}
	return nil
}
