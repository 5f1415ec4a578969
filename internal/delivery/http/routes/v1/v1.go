package v1

import (
	"go.uber.org/zap"

	"prep-pilot/internal/config"
	"prep-pilot/internal/delivery/http/handler"
	"prep-pilot/internal/delivery/http/middleware"
	"prep-pilot/internal/pkg/jwt"
	"prep-pilot/internal/recommender"
	"prep-pilot/internal/resume"
	"prep-pilot/internal/storage"
	"prep-pilot/internal/usecase"
	useruc "prep-pilot/internal/usecase/user"
	"prep-pilot/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps is everything the v1 API needs wired in. Usecases are constructed
// here, mirroring how the route tree groups them.
type Deps struct {
	Config   config.Config
	Log      *zap.Logger
	Engine   *recommender.Engine
	Catalog  *storage.CatalogStore
	History  *storage.HistoryStore
	Users    *storage.UserStore
	Matcher  *resume.Matcher
	LeetCode usecase.SolvedFetcher
	Replies  usecase.ReplyGenerator
	Hub      *ws.Hub
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		d.Config.Auth.AccessSecret,
		d.Config.Auth.RefreshSecret,
		d.Config.Auth.AccessTTL,
		d.Config.Auth.RefreshTTL,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	minSamples := d.Config.Engine.MinTrainSamples

	recommendUC := usecase.NewRecommendUsecase(d.Engine, d.LeetCode, d.History, minSamples, d.Log)
	analyzeUC := usecase.NewAnalyzeUsecase(d.Engine, d.LeetCode)
	appendUC := usecase.NewAppendUsecase(d.Catalog, d.Engine, d.Hub, d.Log)
	chatUC := usecase.NewChatUsecase(d.Engine, d.LeetCode, d.History, d.Replies, minSamples, d.Log)
	resumeUC := usecase.NewResumeUsecase(d.Matcher)
	authUC := usecase.NewAuthUsecase(d.Users, jwtSvc)
	userUC := useruc.NewService(d.Users)

	handler.NewRecommendHandler(recommendUC).RegisterRoutes(r)
	handler.NewAnalyzeHandler(analyzeUC).RegisterRoutes(r)
	handler.NewAppendHandler(appendUC).RegisterRoutes(r)
	handler.NewChatHandler(chatUC).RegisterRoutes(r)
	handler.NewResumeHandler(resumeUC).RegisterRoutes(r)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(authUC).RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())
	usersGroup := protected.Group("/users")
	handler.NewUserHandler(userUC).RegisterRoutes(usersGroup)

	wsHandler := ws.NewHandler(d.Hub, d.Log)
	r.Get("/ws/catalog", wsHandler.HandleCatalogWS)
}
