package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-blog-be/config"
	"github.com/navbryce/next-blog-be/controllers"
	"github.com/navbryce/next-blog-be/db"
	"github.com/navbryce/next-blog-be/middleware"
	"github.com/navbryce/next-blog-be/routes"
	"github.com/navbryce/next-blog-be/util"
	"github.com/navbryce/next-blog-be/web"
)

// New builds the gin engine serving the blog pages, static assets, health and metrics
func New(cfg *config.Config, database db.Database) (*gin.Engine, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestId())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(secure.New(secureConfig(cfg)))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length", middleware.RequestIdHeader},
			MaxAge:        12 * time.Hour,
		}))
	}
	r.Use(middleware.SiteTitle(cfg.SiteTitle, util.SiteTitleKey))
	r.SetHTMLTemplate(templates)

	static, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("error loading static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))
	r.NoRoute(func(c *gin.Context) {
		util.HandleHTTPErrorRes(c, &util.HTTPError{
			Status:  http.StatusNotFound,
			Message: "page not found",
		})
	})

	routes.AddPostRoutes(&r.RouterGroup, controllers.NewPostController(database))
	routes.AddHealthCheckRoutes(&r.RouterGroup, database)
	routes.AddMetricsRoutes(&r.RouterGroup)

	return r, nil
}

func secureConfig(cfg *config.Config) secure.Config {
	secureCfg := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		IsDevelopment:         gin.Mode() != gin.ReleaseMode,
	}
	if cfg.SSL {
		secureCfg.SSLRedirect = true
		secureCfg.STSSeconds = 31536000
		secureCfg.STSIncludeSubdomains = true
	}
	return secureCfg
}
