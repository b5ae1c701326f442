package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/timemachine-api/internal/config"
	"github.com/yourusername/timemachine-api/internal/handler"
	"github.com/yourusername/timemachine-api/internal/middleware"
	pgRepo "github.com/yourusername/timemachine-api/internal/repository/postgres"
	"github.com/yourusername/timemachine-api/internal/service"
	"github.com/yourusername/timemachine-api/pkg/auth"
	"github.com/yourusername/timemachine-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Database.StatementTimeout())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis нужен только rate-limiter'у; без него лимитер работает в режиме fail-open
	redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	milestoneRepo := pgRepo.NewMilestoneRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	progressRepo := pgRepo.NewProgressRepo(db)
	badgeRepo := pgRepo.NewBadgeRepo(db)
	resourceRepo := pgRepo.NewResourceRepo(db)
	adminLogRepo := pgRepo.NewAdminLogRepo(db)

	// Инициализируем JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Почтовый сервис: заглушка, если отправка выключена
	var emailSender service.EmailSender = service.NewNoopEmailService()
	if cfg.Email.Enabled {
		emailSender, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService, emailSender)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	milestoneService, err := service.NewMilestoneService(milestoneRepo, adminLogRepo)
	if err != nil {
		log.Printf("Failed to initialize MilestoneService: %v", err)
		os.Exit(1)
	}
	progressService, err := service.NewProgressService(progressRepo, milestoneRepo)
	if err != nil {
		log.Printf("Failed to initialize ProgressService: %v", err)
		os.Exit(1)
	}
	badgeService, err := service.NewBadgeService(badgeRepo, progressRepo, attemptRepo, milestoneRepo)
	if err != nil {
		log.Printf("Failed to initialize BadgeService: %v", err)
		os.Exit(1)
	}
	quizService, err := service.NewQuizService(quizRepo, attemptRepo, progressRepo, milestoneRepo, badgeService, adminLogRepo, db)
	if err != nil {
		log.Printf("Failed to initialize QuizService: %v", err)
		os.Exit(1)
	}
	resourceService, err := service.NewResourceService(resourceRepo, milestoneRepo, adminLogRepo)
	if err != nil {
		log.Printf("Failed to initialize ResourceService: %v", err)
		os.Exit(1)
	}
	adminService, err := service.NewAdminService(userRepo, milestoneRepo, quizRepo, attemptRepo, badgeRepo, adminLogRepo)
	if err != nil {
		log.Printf("Failed to initialize AdminService: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	milestoneHandler := handler.NewMilestoneHandler(milestoneService, progressService)
	quizHandler := handler.NewQuizHandler(quizService)
	badgeHandler := handler.NewBadgeHandler(badgeService)
	resourceHandler := handler.NewResourceHandler(resourceService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	adminMiddleware := middleware.NewAdminMiddleware(userRepo, adminLogRepo)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()
	router.Use(middleware.RequestID())

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Пользователи
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", rateLimiter.Limit(middleware.LoginRateLimitConfig()), authHandler.Login)
			users.GET("/profile", authMiddleware.RequireAuth(), authHandler.Profile)
		}

		// Вехи
		milestones := api.Group("/milestones")
		{
			milestones.GET("", milestoneHandler.List)
			milestones.GET("/marker/:markerId", milestoneHandler.GetByMarker)

			authedMilestones := milestones.Group("")
			authedMilestones.Use(authMiddleware.RequireAuth())
			{
				authedMilestones.GET("/progress", milestoneHandler.Progress)
				authedMilestones.GET("/progress/periods", milestoneHandler.PeriodProgress)
			}

			adminMilestones := milestones.Group("")
			adminMilestones.Use(authMiddleware.RequireAuth(), adminMiddleware.AdminRequired())
			{
				adminMilestones.GET("/stats", milestoneHandler.Stats)
				adminMilestones.POST("", milestoneHandler.Create)
			}

			milestoneWithID := milestones.Group("/:id")
			milestoneWithID.Use(middleware.ExtractUintParam("id", "milestoneID"))
			{
				milestoneWithID.GET("", milestoneHandler.GetByID)

				adminMilestoneWithID := milestoneWithID.Group("")
				adminMilestoneWithID.Use(authMiddleware.RequireAuth(), adminMiddleware.AdminRequired())
				{
					adminMilestoneWithID.PUT("", milestoneHandler.Update)
					adminMilestoneWithID.DELETE("", milestoneHandler.Delete)
				}
			}
		}

		// Вопросы
		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.GET("", quizHandler.List)
			quizzes.GET("/milestone/:milestoneId",
				middleware.ExtractUintParam("milestoneId", "milestoneID"), quizHandler.ListByMilestone)
			quizzes.POST("/submit", quizHandler.Submit)
			quizzes.GET("/progress", quizHandler.Progress)
			quizzes.GET("/stats", quizHandler.Stats)

			adminQuizzes := quizzes.Group("")
			adminQuizzes.Use(adminMiddleware.AdminRequired())
			{
				adminQuizzes.POST("", quizHandler.Create)
			}
		}

		// Значки
		badges := api.Group("/badges")
		badges.Use(authMiddleware.RequireAuth())
		{
			badges.GET("", badgeHandler.List)
			badges.POST("/check", badgeHandler.Check)
			badges.GET("/stats", badgeHandler.Stats)
		}

		// Учебные материалы
		resources := api.Group("/resources")
		resources.Use(authMiddleware.RequireAuth())
		{
			resources.GET("/milestone/:milestoneId",
				middleware.ExtractUintParam("milestoneId", "milestoneID"), resourceHandler.ListByMilestone)

			adminResources := resources.Group("")
			adminResources.Use(adminMiddleware.AdminRequired())
			{
				adminResources.GET("/admin/all", resourceHandler.ListAll)
				adminResources.POST("", resourceHandler.Create)

				resourceWithID := adminResources.Group("/:id")
				resourceWithID.Use(middleware.ExtractUintParam("id", "resourceID"))
				{
					resourceWithID.PUT("", resourceHandler.Update)
					resourceWithID.PATCH("/toggle", resourceHandler.Toggle)
					resourceWithID.DELETE("", resourceHandler.Delete)
				}
			}
		}

		// Панель администратора
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), adminMiddleware.AdminRequired())
		{
			admin.GET("/verify", adminHandler.Verify)
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/analytics/users", adminHandler.Analytics)
			admin.GET("/export/attempts", adminHandler.ExportAttempts)
			admin.GET("/security/logs", adminHandler.SecurityLogs)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
