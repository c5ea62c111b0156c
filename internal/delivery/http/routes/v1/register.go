package v1

import (
	"log"

	"staff-match/internal/config"
	"staff-match/internal/database"
	"staff-match/internal/delivery/http/handler"
	"staff-match/internal/delivery/http/middleware"
	"staff-match/internal/domain/scheduling"
	"staff-match/internal/embedding"
	"staff-match/internal/infrastructure/cache"
	"staff-match/internal/pkg/jwt"
	"staff-match/internal/repository"
	"staff-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Encoder embedding.Encoder
	Logger  *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(deps.Config.JWT.AccessSecret)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	employeeRepo := repository.NewPostgresEmployeeRepository(deps.DB)
	assignmentRepo := repository.NewPostgresAssignmentRepository(deps.DB)
	profileRepo := repository.NewPostgresWeightProfileRepository(deps.DB)

	rankCfg := rankingConfig(deps.Config)

	recommendUC := usecase.NewRecommendationUsecase(
		employeeRepo,
		assignmentRepo,
		profileRepo,
		deps.Encoder,
		deps.Cache,
		rankCfg,
		deps.Logger,
	)
	employeeUC := usecase.NewEmployeeUsecase(employeeRepo, deps.Cache, deps.Logger)
	settingsUC := usecase.NewWeightSettingsUsecase(profileRepo, deps.Cache, deps.Logger)
	archiveUC := usecase.NewArchiveUsecase(assignmentRepo, deps.Logger)

	protected := r.Group("", authMw.Middleware())

	handler.NewRecommendationHandler(recommendUC).RegisterRoutes(protected)
	handler.NewEmployeeHandler(employeeUC).RegisterRoutes(protected)
	handler.NewSettingsHandler(settingsUC).RegisterRoutes(protected)
	handler.NewAssignmentHandler(archiveUC).RegisterRoutes(protected)
}

func rankingConfig(cfg config.Config) usecase.RankingConfig {
	rc := usecase.DefaultRankingConfig()
	rc.Scheduling = scheduling.Policy{
		HoursPerDay:       cfg.Ranking.HoursPerDay,
		BusyMaxPercent:    cfg.Ranking.BusyMaxPercent,
		PartialMaxPercent: cfg.Ranking.PartialMaxPercent,
	}
	rc.MatchThreshold = cfg.Ranking.MatchThreshold
	rc.LookbackDays = cfg.Ranking.LookbackDays
	rc.CacheTTL = cfg.Redis.TTL
	return rc
}
