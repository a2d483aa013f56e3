package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kanaverse/animeplay/backend/internal/storage"
)

// InitStorage builds the persistence port selected by STORAGE_DRIVER
// (memory, file, redis, postgres or mongo).
func InitStorage() (storage.Store, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	driver := getEnv("STORAGE_DRIVER", "file")
	switch driver {
	case "memory":
		log.Println("Using in-memory storage; state is lost on restart.")
		return storage.NewMemoryStore(), nil
	case "file":
		return initFile(getEnv("STORAGE_FILE", "animeplay_state.json"))
	case "redis":
		return initRedis(getEnv("REDIS_ADDR", "localhost:6379"))
	case "postgres":
		return initPostgres()
	case "mongo":
		return initMongo()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func initFile(path string) (storage.Store, error) {
	store, err := storage.NewFileStore(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Using file storage at %s", path)
	return store, nil
}

func initRedis(addr string) (storage.Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("Successfully connected to Redis!")
	return storage.NewRedisStore(client), nil
}

func initPostgres() (storage.Store, error) {
	connStr := os.Getenv("POSTGRES_CONN_STR")
	if connStr == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL!")
	return storage.NewPostgresStore(db)
}

func initMongo() (storage.Store, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	log.Println("Successfully connected to MongoDB!")
	return storage.NewMongoStore(client.Database(getEnv("MONGO_DATABASE", "animeplay"))), nil
}
