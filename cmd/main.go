package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"quickchat/backend/internal/api/handler"
	"quickchat/backend/internal/auth"
	"quickchat/backend/internal/chathub"
	"quickchat/backend/internal/config"
	"quickchat/backend/internal/models"
	"quickchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

// corsMiddleware keeps the login endpoint reachable from the dev client
// origin. Tokens travel in headers, not cookies, so credentials stay off.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func main() {
	log.Println("Starting QuickChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// Identities are connection-scoped; whatever survived the last process
	// belongs to nobody and would keep nicknames reserved.
	if purged, err := s.PurgeUsers(); err != nil {
		log.Fatalf("Failed to purge stale users: %v", err)
	} else if purged > 0 {
		log.Printf("Purged %d stale user records from a previous run.", purged)
	}

	registry := chathub.NewRegistry()
	messages := chathub.NewMessageChannel(s)
	hub := chathub.NewManagerService(registry, messages, s)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	go hub.Run(context.Background())

	r := gin.Default()
	r.Use(corsMiddleware())
	h := handler.NewHandler(hub, tokens, s)

	r.POST("/auth/login", h.Login)
	r.GET("/ws", h.ServeWebSocket)
	if cfg.StaticDir != "" {
		r.Static("/app", cfg.StaticDir)
	}

	// No global write timeout: websocket connections outlive any sane value.
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Printf("Listening on %s", cfg.Addr)
	log.Fatal(server.ListenAndServe())
}
