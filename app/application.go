package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"skycast.app/api"
	"skycast.app/config"
	"skycast.app/database"
	"skycast.app/providers"
	"skycast.app/providers/cache"
	"skycast.app/repository"
	"skycast.app/scheduler"
	"skycast.app/service"
	"skycast.app/storage"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	server    *api.Server
	scheduler *scheduler.Scheduler
	redis     *cache.RedisCache
	memCache  *cache.MemoryCache
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	weatherClient := providers.NewOpenWeatherClient(&app.config.Weather)
	geocoder := providers.NewOpenMeteoGeocoder(&app.config.Geocoder)
	emailProvider := providers.NewSMTPEmailProvider(&app.config.Email)

	weatherService := service.NewWeatherService(weatherClient, geocoder, app.weatherServiceOptions())
	emailService := service.NewEmailService(emailProvider)

	avatarStore, err := storage.NewAvatarStore(storage.AvatarStoreConfig{
		Endpoint:  app.config.Storage.Endpoint,
		AccessKey: app.config.Storage.AccessKey,
		SecretKey: app.config.Storage.SecretKey,
		Bucket:    app.config.Storage.Bucket,
		UseSSL:    app.config.Storage.UseSSL,
		PublicURL: app.config.Storage.PublicURL,
	})
	if err != nil {
		return fmt.Errorf("create avatar store: %w", err)
	}

	userRepo := repository.NewUserRepository(app.db)
	resetRepo := repository.NewPasswordResetRepository(app.db)

	verifier := service.NewGoogleVerifier(app.config.Auth.GoogleClientID)
	authService := service.NewAuthService(userRepo, resetRepo, emailService, verifier, &app.config.Auth)
	userService := service.NewUserService(userRepo, avatarStore)

	server, err := api.NewServer(api.ServerOptions{
		DB:             app.db,
		Config:         app.config,
		WeatherService: weatherService,
		AuthService:    authService,
		UserService:    userService,
		WeatherProxy:   weatherClient,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	app.server = server
	app.scheduler = scheduler.NewScheduler(app.db, app.config)

	slog.Info("Services initialized successfully")
	return nil
}

// weatherServiceOptions wires the bundle cache, preferring Redis when an
// address is configured and falling back to the in-process cache
func (app *Application) weatherServiceOptions() service.WeatherServiceOptions {
	if !app.config.Cache.Enabled {
		return service.WeatherServiceOptions{}
	}

	var generic cache.GenericCacheInterface
	cacheType := "memory"

	if app.config.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:     app.config.Cache.RedisAddr,
			Password: app.config.Cache.RedisPass,
			DB:       app.config.Cache.RedisDB,
		})
		if err != nil {
			slog.Warn("Redis unavailable, using in-memory bundle cache", "error", err)
		} else {
			app.redis = redisCache
			generic = redisCache
			cacheType = "redis"
		}
	}

	if generic == nil {
		memCache := cache.NewMemoryCache()
		app.memCache = memCache
		generic = memCache
	}

	instrumented := providers.NewInstrumentedCache(generic, cacheType)
	slog.Info("Bundle cache enabled", "type", cacheType, "ttl", app.config.Cache.TTL)

	return service.WeatherServiceOptions{
		Cache:        cache.NewBundleCache(instrumented),
		CacheMetrics: func() map[string]interface{} { return instrumented.GetMetrics().GetStats() },
		CacheTTL:     app.config.Cache.TTL,
	}
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			slog.Warn("Error closing Redis connection", "error", err)
		}
	}

	if app.memCache != nil {
		app.memCache.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
