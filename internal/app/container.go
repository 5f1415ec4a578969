package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"prep-pilot/internal/ai"
	"prep-pilot/internal/config"
	"prep-pilot/internal/leetcode"
	"prep-pilot/internal/recommender"
	"prep-pilot/internal/resume"
	"prep-pilot/internal/storage"
	"prep-pilot/internal/ws"
)

// Container holds the long-lived pieces of the application: stores, the
// recommendation engine, external clients, and the websocket hub.
type Container struct {
	Config   config.Config
	Log      *zap.Logger
	Catalog  *storage.CatalogStore
	History  *storage.HistoryStore
	Users    *storage.UserStore
	Engine   *recommender.Engine
	Matcher  *resume.Matcher
	LeetCode *leetcode.Client
	Replies  *ai.ReplyGenerator
	Hub      *ws.Hub
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	catalogStore := storage.NewCatalogStore(cfg.Data.CatalogPath)
	historyStore := storage.NewHistoryStore(cfg.Data.HistoryPath)
	userStore := storage.NewUserStore(cfg.Data.UsersPath)

	engine := recommender.NewEngine(catalogStore, cfg.Engine.MaxFeatures, log)

	// Missing role profiles disable resume analysis but not the rest of
	// the service.
	var matcher *resume.Matcher
	if profiles, err := resume.LoadProfiles(cfg.Data.RoleProfilesPath); err != nil {
		log.Warn("role profiles unavailable, resume analysis disabled",
			zap.String("path", cfg.Data.RoleProfilesPath),
			zap.Error(err),
		)
	} else {
		matcher = resume.NewMatcher(profiles)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	replies, err := ai.NewReplyGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Warn("reply generator unavailable, chat falls back to templates", zap.Error(err))
		replies = nil
	}

	return &Container{
		Config:   cfg,
		Log:      log,
		Catalog:  catalogStore,
		History:  historyStore,
		Users:    userStore,
		Engine:   engine,
		Matcher:  matcher,
		LeetCode: leetcode.NewClient("", log),
		Replies:  replies,
		Hub:      ws.NewHub(log),
	}, nil
}

// Start launches the background members: the websocket hub loop and, when
// configured, the engine warmup fit.
func (c *Container) Start() {
	go c.Hub.Run()
	if c.Config.Engine.WarmupOnStart {
		c.Engine.Warmup()
	}
}
