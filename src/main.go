package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"Coaching-Management-Backend/src/config"
	"Coaching-Management-Backend/src/controllers"
	"Coaching-Management-Backend/src/database"
	"Coaching-Management-Backend/src/jobs"
	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/middleware"
	"Coaching-Management-Backend/src/repositories"
	"Coaching-Management-Backend/src/routes"
	"Coaching-Management-Backend/src/seeder"
	"Coaching-Management-Backend/src/services/auth"
	"Coaching-Management-Backend/src/services/chapters"
	"Coaching-Management-Backend/src/services/courses"
	"Coaching-Management-Backend/src/services/email"
	"Coaching-Management-Backend/src/services/students"
	"Coaching-Management-Backend/src/utils"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load(config.GetEnv("CONFIG_FILE", "config.yaml"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})
	if cfg.GeneratedJWTSecret {
		logger.Warn().Msg("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// MongoDB
	if err := database.ConnectMongoDB(startCtx, cfg.Mongo.URI, cfg.Mongo.DBName); err != nil {
		logger.Fatal().Err(err).Msg("Error connecting to the database")
	}
	studentRepo := repositories.NewStudentRepository(database.StudentCollection)
	courseRepo := repositories.NewCourseRepository(database.CourseCollection)
	chapterRepo := repositories.NewChapterRepository(database.ChapterCollection)
	for name, ensure := range map[string]func(context.Context) error{
		"students": studentRepo.EnsureIndexes,
		"courses":  courseRepo.EnsureIndexes,
		"chapters": chapterRepo.EnsureIndexes,
	} {
		if err := ensure(startCtx); err != nil {
			logger.Fatal().Err(err).Str("collection", name).Msg("failed to create indexes")
		}
	}

	// Redis backs the token store and the email queue; the API still runs without it
	if err := database.InitRedis(startCtx, cfg.Redis.URI, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.Error().Err(err).Msg("Redis unavailable, continuing without sessions and queue")
	}
	if err := database.InitAsynq(cfg.Redis.URI, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.Error().Err(err).Msg("Asynq client not initialized")
	}

	tokenStore := utils.NewTokenStore(database.RedisClient)
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.JWT.Issuer)

	var legacy *utils.CredentialCodec
	if cfg.Security.LegacyCredentialKey != "" {
		if legacy, err = utils.NewCredentialCodec(cfg.Security.LegacyCredentialKey); err != nil {
			logger.Fatal().Err(err).Msg("invalid legacy credential key")
		}
	}

	// Email
	var sender email.MailSender
	if cfg.SMTPConfigured() {
		smtp, err := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid SMTP configuration")
		}
		sender = smtp
	} else {
		logger.Warn().Msg("SMTP not configured, emails are disabled")
	}

	var queue jobs.Enqueuer
	if database.AsynqClient != nil && sender != nil {
		queue = database.AsynqClient
	}
	dispatcher := jobs.NewDispatcher(queue, sender)

	var worker *jobs.Worker
	if cfg.Worker.Enabled && queue != nil {
		redisOpt, err := database.AsynqRedisOpt(cfg.Redis.URI, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid Redis configuration for worker")
		}
		worker = jobs.NewWorker(redisOpt, cfg.Worker.Concurrency, sender)
		if err := worker.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start email worker")
		}
	}

	// Services
	studentService := students.NewService(studentRepo, dispatcher, legacy)
	authService := auth.NewService(studentService, jwtManager, tokenStore)

	if _, err := seeder.SeedSuperAdmin(startCtx, studentRepo, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		logger.Error().Err(err).Msg("super admin seeding failed")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Coaching Management API",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: controllers.ErrorHandler,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(corsConfig(cfg)))

	routes.InitRoutes(app, routes.Handlers{
		Auth:    controllers.NewAuthController(authService),
		Student: controllers.NewStudentController(studentService),
		Course:  controllers.NewCourseController(courses.NewService(courseRepo)),
		Chapter: controllers.NewChapterController(chapters.NewService(chapterRepo)),
		Health:  controllers.NewHealthController(cfg.Env, database.Ping),
	}, routes.Options{
		JWT:         jwtManager,
		Blacklist:   tokenStore,
		LoginLimit:  cfg.Security.LoginRateLimit,
		LoginWindow: cfg.Security.LoginRateWindow,
	})

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server is running")
		if err := app.Listen(fmt.Sprintf(":%s", cfg.Port)); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	dispatcher.Wait()
	if err := database.CloseAsynq(); err != nil {
		logger.Error().Err(err).Msg("asynq close")
	}
	if err := database.CloseRedis(); err != nil {
		logger.Error().Err(err).Msg("redis close")
	}
	if err := database.DisconnectMongoDB(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("mongo disconnect")
	}
}

// corsConfig allows the configured origins, plus any localhost origin in development.
func corsConfig(cfg *config.Config) cors.Config {
	origins := strings.Join(cfg.CORS.Origins, ",")
	wildcard := origins == "" || origins == "*"
	if wildcard {
		origins = "*"
	}

	c := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: cfg.CORS.Credentials && !wildcard,
	}
	if cfg.IsDevelopment() && !wildcard {
		c.AllowOriginsFunc = func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
		}
	}
	return c
}
