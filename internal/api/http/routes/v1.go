package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/config"
	"github.com/mentormap/mentormap-backend/internal/api/http/middleware"
	authmw "github.com/mentormap/mentormap-backend/internal/auth/middleware"
	profilehttp "github.com/mentormap/mentormap-backend/internal/profiles/http"
	profilerepo "github.com/mentormap/mentormap-backend/internal/profiles/repository"
	profileservice "github.com/mentormap/mentormap-backend/internal/profiles/service"
	"github.com/mentormap/mentormap-backend/internal/qa/events"
	qahttp "github.com/mentormap/mentormap-backend/internal/qa/http"
	"github.com/mentormap/mentormap-backend/internal/qa/repository"
	"github.com/mentormap/mentormap-backend/internal/qa/service"
	"github.com/mentormap/mentormap-backend/internal/qa/submit"
	"github.com/mentormap/mentormap-backend/internal/qa/validation"
)

type V1Deps struct {
	SQL    *sql.DB
	Pool   *pgxpool.Pool
	Redis  *redis.Client // nil runs with in-process guards and no live updates
	Config *config.Config
	Logger *zap.Logger

	// Identity authenticates the caller if it can; anonymous requests pass.
	Identity gin.HandlerFunc
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	if dep.Identity != nil {
		api.Use(dep.Identity)
	}

	var (
		guard      submit.Guard = submit.NewMemoryGuard()
		refresher  submit.Refresher
		subscriber events.Subscriber = events.Noop{}
	)
	if dep.Redis != nil {
		notifier := events.NewNotifier(dep.Redis)
		guard = submit.NewRedisGuard(dep.Redis, dep.Config.Limits.SubmitGuardTTL)
		refresher = notifier
		subscriber = notifier
	} else {
		refresher = events.Noop{}
	}

	profileRepo := profilerepo.NewProfileRepository(dep.SQL)
	profiles := profileservice.NewProfileService(profileRepo)

	questionRepo := repository.NewQuestionRepository(dep.SQL)
	responseRepo := repository.NewResponseRepository(dep.SQL)
	tagRepo := repository.NewTagRepository(dep.Pool)

	workflow := submit.NewWorkflow(submit.Deps{
		Questions: questionRepo,
		Responses: responseRepo,
		Refresher: refresher,
		Guard:     guard,
		Names:     profiles,
		Rules:     rulesFrom(dep.Config),
		Logger:    dep.Logger,
	})
	qa := service.NewQAService(questionRepo, responseRepo, tagRepo, workflow)

	limiter := middleware.NewWriteLimiter(dep.Config.Limits.WritesPerMinute, dep.Config.Limits.WriteBurst)
	write := []gin.HandlerFunc{authmw.RequireIdentity(), limiter.Middleware()}

	qahttp.New(qa, subscriber, dep.Logger).Register(api, write...)

	me := api.Group("", authmw.RequireIdentity())
	profilehttp.New(profiles, dep.Logger).Register(me)
}

func rulesFrom(cfg *config.Config) validation.Rules {
	rules := validation.DefaultRules()
	if cfg.Validation.TitleMin > 0 {
		rules.TitleMin = cfg.Validation.TitleMin
	}
	if cfg.Validation.BodyMin > 0 {
		rules.BodyMin = cfg.Validation.BodyMin
	}
	return rules
}
