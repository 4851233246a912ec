package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/fx"

	"github.com/glimmerco/lumiere/internal/config"
	"github.com/glimmerco/lumiere/internal/pkg/validate"
	"github.com/glimmerco/lumiere/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(
	validate.New,
	newRouter,
)

type routerParams struct {
	fx.In

	Facade   handlers.StorefrontFacade
	Validate *validatorv10.Validate
	Logger   *slog.Logger
	Config   *config.Config
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Validate, p.Logger, Options{
		UploadDir:   p.Config.UploadDir,
		CORSOrigins: p.Config.CORSOrigins,
	})
}
