package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"recycup/config"
	"recycup/db"
	"recycup/middlewares"
	"recycup/routes"
	"recycup/services"
	"recycup/utils"
	"recycup/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	inference := services.NewInferenceClient(
		cfg.Inference.BaseURL,
		time.Duration(cfg.Inference.TimeoutSeconds)*time.Second,
	)
	services.InitVerificationService(inference, services.MongoAwardStore{}, websocket.BroadcastAwardEvent)

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	allowOrigins := cfg.CORS.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)

	// Everything else requires a valid token
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware(cfg))
	{
		auth.GET("/session", routes.SessionRouteHandler)
		auth.POST("/logout", routes.LogoutRouteHandler)

		auth.GET("/user/profile", routes.GetProfileRouteHandler)

		auth.POST("/verification/cup", routes.SubmitCupPhotoRouteHandler)
		auth.POST("/verification/bin", routes.SubmitBinPhotoRouteHandler)
		auth.POST("/verification/submit", routes.SubmitVerificationRouteHandler)
		auth.GET("/verification/status", routes.VerificationStatusRouteHandler)

		auth.GET("/bins", routes.GetBinsRouteHandler)
		auth.GET("/bins/nearby", routes.GetNearbyBinsRouteHandler)

		auth.GET("/ws/awards", websocket.AwardsHandler)
	}

	return router
}
