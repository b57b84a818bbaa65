package main

import (
	"time"

	"locallibrary/config"
	"locallibrary/database"
	routes "locallibrary/internal/app/http"
	"locallibrary/internal/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	log, err := logger.New(config.LOG_MODE)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := database.InitDB(log)

	gin.SetMode(config.GIN_MODE)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, log)

	log.Info("Server starting", "port", config.PORT)
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
