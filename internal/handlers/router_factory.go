package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"

	"ecoatlas/internal/config"
	"ecoatlas/internal/middleware"
	"ecoatlas/internal/observability"
	"ecoatlas/internal/serviceinterfaces"
	contextutils "ecoatlas/internal/utils"
)

// APIPrefix is the path prefix of every JSON endpoint.
const APIPrefix = "/api"

// NewRouter creates a new router with all the necessary middleware and routes.
// metricsHandler and db may be nil.
func NewRouter(
	cfg *config.Config,
	problemService serviceinterfaces.ProblemService,
	solutionService serviceinterfaces.SolutionService,
	ideaService serviceinterfaces.IdeaService,
	statsService serviceinterfaces.StatsService,
	db serviceinterfaces.HealthChecker,
	metricsHandler http.Handler,
	logger *observability.Logger,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	}

	schemas, err := middleware.NewSchemaLoader()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	// Disable automatic redirection for trailing slashes, which is better for APIs
	router.RedirectTrailingSlash = false

	router.Use(middleware.RequestIDMiddleware())
	router.Use(accessLogMiddleware(logger))

	// Recovery sits inside the tracing middleware so the server span sees the 500.
	router.Use(observability.GinMiddleware(cfg.OpenTelemetry.ServiceName))
	router.Use(observability.SpanErrorMiddleware())
	router.Use(middleware.ErrorRecoveryMiddleware(logger))

	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.IsDevelopment = cfg.Server.Debug
	secureConfig.ContentSecurityPolicy = config.DefaultCSP
	router.Use(secure.New(secureConfig))

	healthHandler := NewHealthHandler(db, logger)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	problemHandler := NewProblemHandler(problemService, solutionService, logger)
	solutionHandler := NewSolutionHandler(solutionService, logger)
	ideaHandler := NewIdeaHandler(ideaService, logger)
	statsHandler := NewStatsHandler(statsService, logger)

	validate := func(schema string) gin.HandlerFunc {
		return middleware.RequestValidationMiddleware(schemas, schema, logger)
	}

	routeListing := NewRouteListingHandler("Eco Atlas", APIPrefix)
	router.GET(APIPrefix, routeListing.GetAPIIndex)

	api := router.Group(APIPrefix)
	{
		problems := api.Group("/problems")
		{
			problems.GET("", problemHandler.ListProblems)
			problems.POST("", validate(middleware.SchemaCreateProblem), problemHandler.CreateProblem)
			problems.GET("/:id", problemHandler.GetProblem)
			problems.GET("/:id/solutions", problemHandler.ListProblemSolutions)
		}

		solutions := api.Group("/solutions")
		{
			solutions.GET("", solutionHandler.ListSolutions)
			solutions.POST("", validate(middleware.SchemaCreateSolution), solutionHandler.CreateSolution)
			solutions.GET("/:id", solutionHandler.GetSolution)
		}

		ideas := api.Group("/ideas")
		{
			ideas.GET("", ideaHandler.ListIdeas)
			ideas.POST("", validate(middleware.SchemaCreateIdea), ideaHandler.CreateIdea)
			ideas.GET("/:id", ideaHandler.GetIdea)
			ideas.PUT("/:id", validate(middleware.SchemaUpdateIdea), ideaHandler.UpdateIdea)
			ideas.DELETE("/:id", ideaHandler.DeleteIdea)
			ideas.POST("/:id/vote", ideaHandler.VoteIdea)
		}

		api.GET("/stats", statsHandler.GetStats)
	}
	routeListing.CollectRoutes(router)

	var index []byte
	if cfg.Server.ServeFrontend {
		assets, indexHTML, err := staticAssets()
		if err != nil {
			return nil, contextutils.WrapError(err, "failed to load embedded frontend")
		}
		index = indexHTML
		router.StaticFS("/assets", http.FS(assets))
		router.GET("/", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", index)
		})
	}

	// Unknown API paths get a JSON 404; everything else falls back to the client.
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		isAPI := path == APIPrefix || strings.HasPrefix(path, APIPrefix+"/")
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if isAPI || index == nil || !isRead {
			HandleAppError(c, contextutils.ErrRouteNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Requested-With", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}

	for _, origin := range origins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			return corsConfig
		}
	}
	corsConfig.AllowOrigins = origins
	return corsConfig
}

// accessLogMiddleware logs one line per request at a level chosen by status.
func accessLogMiddleware(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.status_code": statusCode,
			"http.latency_ms":  time.Since(start).Milliseconds(),
			"http.client_ip":   c.ClientIP(),
			"http.user_agent":  c.Request.UserAgent(),
			"http.request_id":  c.GetString(middleware.RequestIDHeader),
		}
		if len(c.Errors) > 0 {
			fields["http.error"] = c.Errors.String()
		}

		switch {
		case statusCode >= 500:
			fields["http.error_type"] = "server_error"
			logger.Error(c.Request.Context(), "HTTP request failed", nil, fields)
		case statusCode >= 400:
			fields["http.error_type"] = "client_error"
			logger.Warn(c.Request.Context(), "HTTP request warning", fields)
		default:
			logger.Info(c.Request.Context(), "HTTP request", fields)
		}
	}
}
