package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/config"
	httpapi "github.com/mentormap/mentormap-backend/internal/api/http"
	"github.com/mentormap/mentormap-backend/internal/api/http/middleware"
	"github.com/mentormap/mentormap-backend/internal/api/http/routes"
	qahttp "github.com/mentormap/mentormap-backend/internal/qa/http"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Logger      *zap.Logger
	SQL         *sql.DB
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	Identity    gin.HandlerFunc
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	SetGinMode(dep.Config.App.Environment)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.Config.Server.AllowedOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dep.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		SQL:      dep.SQL,
		Pool:     dep.Pool,
		Redis:    dep.Redis,
		Config:   dep.Config,
		Logger:   dep.Logger,
		Identity: dep.Identity,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			middleware.RequestIDHeader, qahttp.DraftIDHeader,
			"X-User-Id", "X-User-Email", "X-User-Name",
		},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
