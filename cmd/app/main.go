package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/blogly-app/blogly-back/internal/config"
	"github.com/blogly-app/blogly-back/internal/db"
	"github.com/blogly-app/blogly-back/internal/service"
	"github.com/blogly-app/blogly-back/internal/transport"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			NewLogger,
			db.NewGormClient,
			service.NewBlog,
			transport.NewHTTPServer,
		),
		fx.Invoke(func(server *transport.HTTPServer) {}),
	)

	app.Run()
}

func NewLogger() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
