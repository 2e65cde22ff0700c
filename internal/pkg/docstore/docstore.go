package docstore

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscare-app/CampusCare/internal/pkg/env"
)

var (
	db     *mongo.Database
	client *mongo.Client
	once   sync.Once
)

// SetupDocStore connects to the secondary document store. The connection is
// optional: without it the service simply runs without a fallback backend.
func SetupDocStore() {
	once.Do(func() {
		uri := env.GetEnv("DOCSTORE_URI", "")
		if uri == "" {
			log.Println("DOCSTORE_URI not configured, fallback store disabled")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			log.Printf("Failed to connect to document store: %v", err)
			return
		}
		if err := c.Ping(ctx, nil); err != nil {
			log.Printf("Document store unreachable: %v", err)
			return
		}

		log.Println("Connected to document store")
		client = c
		db = client.Database(env.GetEnv("DOCSTORE_DB", "campuscare"))
	})
}

// GetDatabase returns the document store handle, or nil when not configured.
func GetDatabase() *mongo.Database {
	return db
}

// GetCollection returns a collection by name, or nil when the store is not configured.
func GetCollection(name string) *mongo.Collection {
	if db == nil {
		return nil
	}
	return db.Collection(name)
}
