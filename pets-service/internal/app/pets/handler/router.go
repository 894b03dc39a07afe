package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"petshop/pkg/logger"
	"petshop/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Pets Service с использованием Gin
func SetupRoutes(petHandler *PetHandler) *gin.Engine {
	router := gin.New()

	// Неверный метод для известного пути - 405, а не 404
	router.HandleMethodNotAllowed = true

	// Recovery middleware для обработки panic, ответ в общем формате ошибок
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		respondError(c, http.StatusInternalServerError, internalMessage)
	}))

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("pets-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"https://*", "http://*"},
		AllowWildcard: true,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders: []string{"Location", logger.RequestIDHeader},
		MaxAge:        300,
	}))

	router.GET("/health", petHandler.Health)
	router.GET("/", petHandler.Index)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pets := router.Group(petsPath)
	{
		pets.GET("", petHandler.ListPets)
		pets.POST("", petHandler.CreatePet)
		pets.GET("/:id", petHandler.GetPet)
		pets.PUT("/:id", petHandler.UpdatePet)
		pets.DELETE("/:id", petHandler.DeletePet)
		pets.PUT("/:id/purchase", petHandler.PurchasePet)
	}

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "The requested URL was not found on the server.")
	})

	router.NoMethod(func(c *gin.Context) {
		respondError(c, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
	})

	return router
}
