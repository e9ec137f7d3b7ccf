package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "skycast.app/errors"
)

// proxyParams copies the whitelisted upstream query parameters from the
// incoming request
func proxyParams(c *gin.Context, names ...string) url.Values {
	params := url.Values{}
	for _, name := range names {
		if v := c.Query(name); v != "" {
			params.Set(name, v)
		}
	}
	return params
}

func (s *Server) proxy(c *gin.Context, path string, params url.Values) {
	body, status, err := s.weatherProxy.ProxyGet(c.Request.Context(), path, params)
	if err != nil {
		slog.Error("Weather proxy error", "path", path, "error", err)
		s.handleError(c, err)
		return
	}
	c.Data(status, "application/json", body)
}

func (s *Server) proxyCurrent(c *gin.Context) {
	params := proxyParams(c, "lat", "lon", "q", "units", "lang")
	if params.Get("units") == "" {
		params.Set("units", "metric")
	}
	s.proxy(c, "/weather", params)
}

func (s *Server) proxyForecast(c *gin.Context) {
	params := proxyParams(c, "lat", "lon", "q", "units", "lang", "cnt")
	if params.Get("units") == "" {
		params.Set("units", "metric")
	}
	s.proxy(c, "/forecast", params)
}

func (s *Server) proxyAirPollution(c *gin.Context) {
	s.proxy(c, "/air_pollution", proxyParams(c, "lat", "lon"))
}

func (s *Server) proxyGeoDirect(c *gin.Context) {
	s.proxy(c, "/direct", proxyParams(c, "q", "limit"))
}

// getBundle serves the assembled dashboard payload for either a coordinate
// pair or a city name. An optional tz query parameter (IANA name) pins the
// timezone used for the daily buckets.
func (s *Server) getBundle(c *gin.Context) {
	loc, err := bundleLocation(c.Query("tz"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	if city := c.Query("city"); city != "" {
		bundle, err := s.weatherService.GetBundleByCity(c.Request.Context(), city, loc)
		if err != nil {
			slog.Error("Bundle by city error", "city", city, "error", err)
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, bundle)
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		s.handleError(c, apperrors.NewValidationError("lat/lon or city parameters are required"))
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		s.handleError(c, apperrors.NewValidationError("lat/lon out of range"))
		return
	}

	bundle, err := s.weatherService.GetBundle(c.Request.Context(), lat, lon, loc)
	if err != nil {
		slog.Error("Bundle error", "lat", lat, "lon", lon, "error", err)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (s *Server) searchCities(c *gin.Context) {
	results, err := s.weatherService.SearchCities(c.Request.Context(), c.Query("q"))
	if err != nil {
		slog.Error("City search error", "query", c.Query("q"), "error", err)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func bundleLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, apperrors.NewValidationError("unknown tz parameter")
	}
	return loc, nil
}
