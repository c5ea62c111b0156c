package routes

import (
	"log"

	"staff-match/internal/config"
	"staff-match/internal/database"
	v1 "staff-match/internal/delivery/http/routes/v1"
	"staff-match/internal/embedding"
	"staff-match/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

// Deps bundles everything the route tree needs; repositories and usecases
// are constructed inside the versioned register functions.
type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Encoder embedding.Encoder
	Logger  *log.Logger
}

func RegisterV1(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Deps{
		Config:  deps.Config,
		DB:      deps.DB,
		Cache:   deps.Cache,
		Encoder: deps.Encoder,
		Logger:  deps.Logger,
	})
}
