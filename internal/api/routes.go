package api

import (
	"alcyxob/exercise-tracker/internal/observability"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Dependencies are the collaborators SetupRoutes wires into handlers.
type Dependencies struct {
	UserService     service.UserService
	ExerciseService service.ExerciseService
	ExportService   service.ExportService
	Logger          logrus.FieldLogger
	Metrics         *observability.Metrics
	Gatherer        prometheus.Gatherer // Source for /metrics; nil disables the endpoint
	PublicDir       string
	ViewsDir        string
}

// SetupRoutes installs middleware and every route on router.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	useFormFieldNames()

	userHandler := NewUserHandler(deps.UserService)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService)
	exportHandler := NewExportHandler(deps.ExportService)
	staticHandler := NewStaticHandler(deps.PublicDir, deps.ViewsDir)

	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(deps.Logger))
	router.Use(RecoveryMiddleware(deps.Logger))
	if deps.Metrics != nil {
		router.Use(MetricsMiddleware(deps.Metrics))
	}
	router.Use(cors.Default())
	router.Use(ErrorHandler(deps.Logger))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	router.GET("/", staticHandler.Index)

	exerciseGroup := router.Group("/api/exercise")
	{
		exerciseGroup.POST("/new-user", userHandler.NewUser)
		exerciseGroup.GET("/users", userHandler.ListUsers)
		exerciseGroup.POST("/add", exerciseHandler.AddExercise)
		exerciseGroup.GET("/log", exerciseHandler.GetLog)
		exerciseGroup.POST("/export", exportHandler.ExportLog)
	}

	router.NoRoute(staticHandler.NoRoute)
}
