package http

import (
	"context"

	"github.com/dkeye/mazetown/internal/adapters/signal"
	"github.com/dkeye/mazetown/internal/app/orch"
	"github.com/dkeye/mazetown/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	sessionName     = "MazetownSessions"
	sessionTownKey  = "town"
	sessionTokenKey = "token"
	adminHeader     = "X-Admin-Secret"
)

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, store))

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
		r.GET("/", func(c *gin.Context) {
			c.File(cfg.StaticPath + "/index.html")
		})
	}

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	h := &handlers{orch: o, secret: cfg.Secret}
	ws := signal.NewSignalWSController(o, cfg.ReadLimit, cfg.PingPeriod)

	api := r.Group("/api")

	api.GET("/towns", h.listTowns)
	api.POST("/towns", h.createTown)
	api.GET("/towns/:id", h.getTown)
	api.PATCH("/towns/:id", h.updateTown)
	api.DELETE("/towns/:id", h.deleteTown)
	api.POST("/towns/:id/sessions", h.joinTown)

	api.GET("/leaderboard", h.leaderboard)
	api.DELETE("/leaderboard/:username", h.deleteLeaderboardEntry)

	api.GET("/ws/signal", func(c *gin.Context) {
		townID, token := signalCredentials(c)
		log.Info().Str("module", "adapters.http").Str("town", string(townID)).Msg("ws signal endpoint hit")
		ws.HandleSignal(ctx, c, townID, token)
	})

	return r
}
