package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"skycast.app/config"
	apperrors "skycast.app/errors"
	"skycast.app/models"
	"skycast.app/service"
)

const sessionCookieName = "token"

// WeatherProxyInterface forwards raw upstream requests for the thin
// pass-through weather endpoints
type WeatherProxyInterface interface {
	ProxyGet(ctx context.Context, path string, params url.Values) ([]byte, int, error)
}

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	db             *gorm.DB
	config         *config.Config
	weatherService service.WeatherServiceInterface
	authService    service.AuthServiceInterface
	userService    service.UserServiceInterface
	weatherProxy   WeatherProxyInterface
}

// ServerOptions collects the dependencies of the HTTP server
type ServerOptions struct {
	DB             *gorm.DB
	Config         *config.Config
	WeatherService service.WeatherServiceInterface
	AuthService    service.AuthServiceInterface
	UserService    service.UserServiceInterface
	WeatherProxy   WeatherProxyInterface
}

// validateCityName rejects blank or unreasonably long city names
func validateCityName(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value != "" && len(value) <= 120
}

// NewServer creates and configures a new HTTP server
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Config == nil {
		return nil, apperrors.NewConfigurationError("server config is required", nil)
	}
	if opts.WeatherService == nil || opts.AuthService == nil || opts.UserService == nil {
		return nil, apperrors.NewConfigurationError("server services are required", nil)
	}

	// Register custom validator for city name fields
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("cityname", validateCityName); err != nil {
			return nil, apperrors.NewConfigurationError("register cityname validator", err)
		}
	}

	server := &Server{
		router:         gin.Default(),
		db:             opts.DB,
		config:         opts.Config,
		weatherService: opts.WeatherService,
		authService:    opts.AuthService,
		userService:    opts.UserService,
		weatherProxy:   opts.WeatherProxy,
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
			auth.POST("/google", s.googleLogin)
			auth.POST("/logout", s.logout)
			auth.POST("/forgot-password", s.forgotPassword)
			auth.POST("/reset-password", s.resetPassword)
		}

		users := api.Group("/users", s.requireAuth)
		{
			users.GET("/me", s.getProfile)
			users.PUT("/update-profile", s.updateProfile)
			users.PUT("/change-password", s.changePassword)
			users.POST("/upload-profile-picture", s.uploadProfilePicture)
			users.DELETE("/delete-account", s.deleteAccount)
			users.GET("/favorites", s.listFavorites)
			users.POST("/add-favorite", s.addFavorite)
			users.POST("/remove-favorite", s.removeFavorite)
			users.DELETE("/delete-favorites", s.clearFavorites)
		}

		weather := api.Group("/weather")
		{
			weather.GET("/current", s.proxyCurrent)
			weather.GET("/forecast", s.proxyForecast)
			weather.GET("/air_pollution", s.proxyAirPollution)
			weather.GET("/geo/direct", s.proxyGeoDirect)
			weather.GET("/bundle", s.getBundle)
			weather.GET("/search", s.searchCities)
		}
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// requireAuth resolves the session cookie into a user ID or rejects the call
func (s *Server) requireAuth(c *gin.Context) {
	tokenStr, err := c.Cookie(sessionCookieName)
	if err != nil {
		s.handleError(c, apperrors.NewUnauthorizedError("authentication required"))
		c.Abort()
		return
	}

	userID, err := s.authService.ParseToken(tokenStr)
	if err != nil {
		s.handleError(c, err)
		c.Abort()
		return
	}

	c.Set("userID", userID)
	c.Next()
}

func (s *Server) currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(s.config.Auth.TokenTTL.Seconds()), "/", "", s.config.Auth.SecureCookies, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", s.config.Auth.SecureCookies, true)
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperrors.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperrors.AlreadyExistsError:
			statusCode = http.StatusConflict
			message = appErr.Message
		case apperrors.UnauthorizedError:
			statusCode = http.StatusUnauthorized
			message = appErr.Message
		case apperrors.TokenError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperrors.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case apperrors.DataValidationError:
			statusCode = http.StatusBadGateway
			message = "External service returned invalid data"
		case apperrors.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		case apperrors.EmailError:
			statusCode = http.StatusServiceUnavailable
			message = "Unable to send email"
		case apperrors.StorageError:
			statusCode = http.StatusServiceUnavailable
			message = "Storage unavailable"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
