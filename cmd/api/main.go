// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"shipping-admin-api-server/config"
	"shipping-admin-api-server/internal/api/routes"
	"shipping-admin-api-server/internal/auth"
	"shipping-admin-api-server/internal/database"
	"shipping-admin-api-server/internal/otp"
	"shipping-admin-api-server/internal/s3"
	"shipping-admin-api-server/internal/socket"
	"shipping-admin-api-server/internal/store"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// .env is optional, real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	jwtExpiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		log.Fatalf("Invalid jwt.expiration: %v", err)
	}
	otpExpiration, err := time.ParseDuration(cfg.OTP.Expiration)
	if err != nil {
		log.Fatalf("Invalid otp.expiration: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret must be configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 2. Storage backend: MongoDB when configured, in-memory otherwise
	var st store.Store
	if cfg.Mongo.URI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			log.Fatalf("Failed to ping MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())
		st = store.NewMongo(client.Database(cfg.Mongo.DBName))
		log.Println("Connected to MongoDB")
	} else {
		st = store.NewMemory()
		log.Println("MONGO_URI not set, using in-memory store")
	}

	// 3. OTP store: Redis when configured, in-memory otherwise
	var otpStore otp.Store
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to ping Redis: %v", err)
		}
		otpStore = otp.NewRedisStore(redisClient)
		log.Println("Connected to Redis")
	} else {
		otpStore = otp.NewMemoryStore()
		log.Println("REDIS_ADDR not set, using in-memory OTP store")
	}
	otpIssuer := otp.NewIssuer(otpStore, otpExpiration)

	// 4. S3 uploader for proof-of-delivery photos, optional
	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
	} else {
		log.Println("S3_BUCKET not set, proof photo uploads disabled")
	}

	authManager := auth.NewManager(cfg.JWT.Secret, jwtExpiration)
	wsHub := socket.NewHub()

	// 5. Bootstrap admin account
	database.SeedAdmin(ctx, st, cfg.Admin.Phone, cfg.Admin.Password)

	// 6. Pass every component into the router
	router := routes.SetupRouter(st, authManager, otpIssuer, s3Uploader, wsHub)

	// 7. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
