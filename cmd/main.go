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

	"pet-adoption-server/config"
	_ "pet-adoption-server/docs"
	"pet-adoption-server/internal/handler"
	"pet-adoption-server/internal/repository"
	"pet-adoption-server/internal/security"
	"pet-adoption-server/internal/service"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Pet adoption server API
// @version 1.0
// @description REST API площадки пристройства животных: аутентификация с ротацией refresh-токенов, карточки питомцев, профиль и загрузка медиа
// @host localhost:8080
// @BasePath /
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("ошибка чтения конфигурации: %v", err)
	}

	database, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("ошибка подключения к базе данных: %v", err)
	}
	defer database.Close()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("ошибка подключения к Redis: %v", err)
	}
	defer redisClient.Close()

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("ошибка подключения к S3: %v", err)
	}

	cacheTTL := time.Duration(cfg.TTL.S3AndRedis) * time.Minute

	userRepository := repository.NewUserRepository(database)
	refreshTokenRepository := repository.NewRefreshTokenRepository(database)
	petRepository := repository.NewPetRepository(database)
	cacheRepository := repository.NewCacheRepository(redisClient, cacheTTL)

	authenticationService := service.NewAuthenticationService(database, userRepository, refreshTokenRepository, &cfg.JWT)
	jwtService := security.NewJWTService(&cfg.JWT)
	petService := service.NewPetService(database, petRepository, cacheRepository, s3Service)
	profileService := service.NewProfileService(database, userRepository, petRepository)

	authenticationHandler := handler.NewAuthenticationHandler(authenticationService, jwtService, cfg)
	petHandler := handler.NewPetHandler(petService)
	profileHandler := handler.NewProfileHandler(profileService)
	uploadHandler := handler.NewUploadHandler(s3Service)

	server, router := config.SetupServer(cfg.ServerAddr)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authenticationHandler, jwtService)
	setupPetRoutes(router, petHandler, jwtService)
	setupProfileRoutes(router, profileHandler, jwtService)
	setupUploadRoutes(router, uploadHandler, jwtService)

	runServer(ctx, server, cancel)
}

func setupAuthRoutes(router *chi.Mux, authenticationHandler *handler.AuthenticationHandler, jwtService *security.JWTService) {
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authenticationHandler.Register)
		r.Post("/login", authenticationHandler.Login)
		r.Post("/refresh", authenticationHandler.Refresh)
		r.Post("/logout", authenticationHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Get("/me", authenticationHandler.Me)
		})
	})
}

func setupPetRoutes(router *chi.Mux, petHandler *handler.PetHandler, jwtService *security.JWTService) {
	router.Route("/api/pets", func(r chi.Router) {
		r.Get("/", petHandler.ListPets)
		r.Get("/{uuid}", petHandler.GetPet)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Post("/", petHandler.CreatePet)
			r.Patch("/{uuid}", petHandler.UpdatePet)
			r.Put("/{uuid}/media", petHandler.ReplaceMedia)
			r.Delete("/{uuid}", petHandler.DeletePet)
		})
	})
}

func setupProfileRoutes(router *chi.Mux, profileHandler *handler.ProfileHandler, jwtService *security.JWTService) {
	router.Route("/api/profile", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Get("/", profileHandler.GetProfile)
		r.Patch("/", profileHandler.UpdateProfile)
	})
}

func setupUploadRoutes(router *chi.Mux, uploadHandler *handler.UploadHandler, jwtService *security.JWTService) {
	router.Route("/api/uploads", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Post("/", uploadHandler.UploadPetMedia)
		r.Get("/presign", uploadHandler.PresignDownload)
	})
}

func runServer(ctx context.Context, server *http.Server, cancel context.CancelFunc) {
	go func() {
		log.Printf("сервер запущен на %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ошибка работы сервера: %v", err)
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("получен сигнал завершения")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ошибка остановки сервера: %v", err)
		return
	}

	log.Println("сервер остановлен")
}
