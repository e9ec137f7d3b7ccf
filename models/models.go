// Package models defines data structures used throughout the application
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered dashboard account
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-"`
	GoogleID     *string        `json:"google_id,omitempty" gorm:"uniqueIndex"`
	Picture      string         `json:"picture,omitempty"`
	Favorites    []FavoriteCity `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// FavoriteCity is one saved city on a user's dashboard
type FavoriteCity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_city"`
	City      string    `json:"city" gorm:"not null;uniqueIndex:idx_user_city"`
	CreatedAt time.Time `json:"created_at"`
}

// PasswordReset holds a pending one-time password-reset code
type PasswordReset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	OTPHash   string    `json:"-" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrentWeather represents normalized current conditions for one location
type CurrentWeather struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDeg     float64 `json:"wind_deg"`
	Visibility  float64 `json:"visibility"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Main        string  `json:"main"`
	Clouds      float64 `json:"clouds"`
	Sunrise     int64   `json:"sunrise"`
	Sunset      int64   `json:"sunset"`
	Timezone    int     `json:"timezone"`
	Dt          int64   `json:"dt"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ForecastSample is one raw 3-hour-resolution record from the provider feed,
// ordered ascending by timestamp
type ForecastSample struct {
	Dt          int64   `json:"dt"`
	Temp        float64 `json:"temp"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDeg     float64 `json:"wind_deg"`
	Pop         float64 `json:"pop"`
	Main        string  `json:"main"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Clouds      float64 `json:"clouds"`
}

// ForecastEntry is the projected shape consumed by the dashboard, used for
// both the hourly slice and the per-day summaries
type ForecastEntry struct {
	Dt          int64   `json:"dt"`
	Temp        float64 `json:"temp"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Main        string  `json:"main"`
	WindSpeed   float64 `json:"wind_speed"`
	Pop         float64 `json:"pop"`
}

// AirQuality represents air pollution measurements; fields default to zero
// when the provider has no data for the location
type AirQuality struct {
	AQI  int     `json:"aqi"`
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
}

// WeatherBundle is the combined result for one location query
type WeatherBundle struct {
	CurrentWeather CurrentWeather  `json:"currentWeather"`
	HourlyForecast []ForecastEntry `json:"hourlyForecast"`
	DailyForecast  []ForecastEntry `json:"dailyForecast"`
	AirQuality     AirQuality      `json:"airQuality"`
	UVIndex        int             `json:"uvIndex"`
}

// CityResult is one geocoding candidate
type CityResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// RegisterRequest represents data required to create an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents credentials for password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token issued to the client
type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// ForgotPasswordRequest starts the OTP-based password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the OTP-based password reset flow
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// FavoriteRequest names a city to add or remove
type FavoriteRequest struct {
	City string `json:"city" binding:"required,cityname"`
}

// UpdateProfileRequest carries editable profile fields
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordRequest rotates a user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// UserProfile is the account shape returned to the client
type UserProfile struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Picture   string   `json:"picture,omitempty"`
	GoogleID  string   `json:"google_id,omitempty"`
	Favorites []string `json:"favorites"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
