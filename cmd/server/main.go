package main

import (
	"fmt"
	"log"
	"net/http"

	"valomate/backend/internal/auth"
	"valomate/backend/internal/config"
	"valomate/backend/internal/database"
	"valomate/backend/internal/handler"
	"valomate/backend/internal/hub"
	"valomate/backend/internal/mailer"
	"valomate/backend/internal/repository"
	"valomate/backend/internal/resettoken"
	"valomate/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	// Swagger imports
	_ "valomate/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

func newMailer() mailer.Mailer {
	cfg := config.AppConfig
	if cfg.MailDriver == "smtp" {
		return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}
	log.Println("MAIL_DRIVER is not smtp, mail will be written to the log")
	return mailer.LogMailer{}
}

// @title           Valomate API
// @version         1.0
// @description     This is the API for the Valomate matchmaking service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	db := database.Connect(config.AppConfig.DatabaseURL)

	// Connect to Redis (password-reset tokens)
	redisOpts, err := redis.ParseURL(config.AppConfig.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)

	// Repositories
	userRepo := repository.NewGormUserRepo(db)
	verificationRepo := repository.NewGormVerificationRepo(db)
	taxonomyRepo := repository.NewGormTaxonomyRepo(db)
	profileRepo := repository.NewGormProfileRepo(db)
	roomRepo := repository.NewGormRoomRepo(db)
	requestRepo := repository.NewGormJoinRequestRepo(db)
	chatRepo := repository.NewGormChatRepo(db)

	// Services
	eventHub := hub.NewHub()
	resetStore := resettoken.NewRedisStore(rdb, resettoken.DefaultTTL)
	profileSvc := service.NewProfileService(profileRepo, taxonomyRepo)
	taxonomySvc := service.NewTaxonomyService(taxonomyRepo)
	roomSvc := service.NewRoomService(roomRepo, requestRepo, chatRepo, profileSvc, eventHub)
	chatSvc := service.NewChatService(roomRepo, chatRepo, eventHub)
	identitySvc := service.NewIdentityService(
		userRepo, verificationRepo, profileRepo, requestRepo, roomSvc,
		resetStore, newMailer(), repository.SystemClock{}, config.AppConfig.BaseURL,
	)

	// Handlers
	authHandler := handler.NewAuthHandler(identitySvc)
	userHandler := handler.NewUserHandler(identitySvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomySvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	chatHandler := handler.NewChatHandler(chatSvc, eventHub)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.GET("/verify-email", authHandler.VerifyEmail)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/resend-verification-email", authHandler.ResendVerification)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/reset-password/:uid/:token", authHandler.ResetPassword)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", userHandler.GetMe)
			userRoutes.PUT("/me/username", userHandler.ChangeUsername)
			userRoutes.PUT("/me/password", userHandler.ChangePassword)
			userRoutes.DELETE("/me", userHandler.DeleteAccount)
		}

		// Taxonomy listing routes (protected)
		taxonomyRoutes := apiV1.Group("")
		taxonomyRoutes.Use(auth.AuthMiddleware())
		{
			taxonomyRoutes.GET("/agents", taxonomyHandler.ListAgents)
			taxonomyRoutes.GET("/platforms", taxonomyHandler.ListPlatforms)
			taxonomyRoutes.GET("/ranks", taxonomyHandler.ListRanks)
			taxonomyRoutes.GET("/regions", taxonomyHandler.ListRegions)
		}

		// Profile routes (protected)
		profileRoutes := apiV1.Group("/profile")
		profileRoutes.Use(auth.AuthMiddleware())
		{
			profileRoutes.POST("/agents/select", profileHandler.SelectAgent)
			profileRoutes.GET("/me", profileHandler.GetMe)
			profileRoutes.PUT("/agent/update", profileHandler.ReplaceAgents)
			profileRoutes.PATCH("/platform/update", profileHandler.UpdatePlatform)
			profileRoutes.PUT("/rank/update", profileHandler.UpdateRank)
			profileRoutes.PATCH("/region/update", profileHandler.UpdateRegion)
		}

		// Room routes (protected)
		roomRoutes := apiV1.Group("/rooms")
		roomRoutes.Use(auth.AuthMiddleware())
		{
			roomRoutes.GET("", roomHandler.SearchRooms)
			roomRoutes.POST("/leave", roomHandler.LeaveRoom) // No ID needed, user leaves their own room
			roomRoutes.POST("/create/:kind", roomHandler.CreateRoom)
			roomRoutes.GET("/:id", roomHandler.GetRoom)
			roomRoutes.POST("/:id/join", roomHandler.RequestJoin)
			roomRoutes.GET("/:id/join-requests", roomHandler.ListJoinRequests)
			roomRoutes.PUT("/:id/join-requests/:requestID/accept", roomHandler.AcceptJoinRequest)
			roomRoutes.PUT("/:id/join-requests/:requestID/reject", roomHandler.RejectJoinRequest)

			// Chat
			roomRoutes.POST("/:id/chat/messages", chatHandler.SendMessage)
			roomRoutes.GET("/:id/chat/messages", chatHandler.ListMessages)
			roomRoutes.GET("/:id/chat/stream", chatHandler.StreamEvents)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware(userRepo))
		{
			adminRoutes.POST("/agents", taxonomyHandler.CreateAgent)
			adminRoutes.POST("/platforms", taxonomyHandler.CreatePlatform)
			adminRoutes.POST("/ranks", taxonomyHandler.CreateRank)
			adminRoutes.POST("/regions", taxonomyHandler.CreateRegion)
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ServerAddr)
	fmt.Println("Swagger UI is available at /swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddr))
}
