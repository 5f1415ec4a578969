package app

import (
	"fmt"
	"strings"

	"prep-pilot/internal/delivery/http/middleware"
	"prep-pilot/internal/delivery/http/routes"
	v1 "prep-pilot/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	f.Use(middleware.NewErrorMiddleware(c.Log).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())

	routes.NewRegistry(v1.Deps{
		Config:   c.Config,
		Log:      c.Log,
		Engine:   c.Engine,
		Catalog:  c.Catalog,
		History:  c.History,
		Users:    c.Users,
		Matcher:  c.Matcher,
		LeetCode: c.LeetCode,
		Replies:  c.Replies,
		Hub:      c.Hub,
	}).Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(c *Container) (*App, func() error, error) {
	app := New(c)
	c.Start()
	cleanup := func() error {
		return c.Log.Sync()
	}
	return app, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
