package app

import (
	"context"
	"log"
	"time"

	"staff-match/internal/config"
	"staff-match/internal/database"
	dbpostgres "staff-match/internal/database/postgres"
	"staff-match/internal/embedding"
	"staff-match/internal/infrastructure/cache"
)

type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Encoder *embedding.Client
	Logger  *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	encoder, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKey:    cfg.Embedding.APIKey,
		Model:     cfg.Embedding.Model,
		CacheSize: cfg.Embedding.CacheSize,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// Redis is best-effort; an unreachable server leaves the cache in
	// bypass mode rather than failing startup.
	redisCache := cache.NewRedis(cfg.Redis, logger)

	return &Container{
		Config:  cfg,
		DB:      db,
		Cache:   redisCache,
		Encoder: encoder,
		Logger:  logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("redis close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
