package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"dashpad/database"
	"dashpad/models"
	"dashpad/store"
)

// CacheDuration is the validity window for a persisted weather reading.
const CacheDuration = 30 * time.Minute

// WeatherService resolves a location (configured city, then device
// geolocation) and caches the current conditions for CacheDuration.
// Refresh is the only way to force a new reading inside the window.
type WeatherService struct {
	storage    database.Store
	settings   *SettingsService
	geolocator Geolocator
	geocoder   Geocoder
	conditions ConditionsProvider

	weather *store.Store[*models.WeatherData]
	status  *store.Store[models.Status]
	err     *store.Store[string]

	now func() time.Time
}

func NewWeatherService(storage database.Store, settings *SettingsService, geolocator Geolocator, geocoder Geocoder, conditions ConditionsProvider) *WeatherService {
	s := &WeatherService{
		storage:    storage,
		settings:   settings,
		geolocator: geolocator,
		geocoder:   geocoder,
		conditions: conditions,
		status:     store.New(models.StatusIdle),
		err:        store.New(""),
		now:        time.Now,
	}
	s.weather = store.New(s.loadCachedWeather())
	return s
}

// loadCachedWeather reuses a persisted reading only while it is inside the
// validity window; anything older is treated as absent.
func (s *WeatherService) loadCachedWeather() *models.WeatherData {
	var cached models.WeatherData
	if !s.storage.Load(database.KeyWeatherCache, &cached) {
		return nil
	}
	if s.now().Sub(cached.UpdatedAt) < CacheDuration {
		return &cached
	}
	return nil
}

func (s *WeatherService) Weather() *models.WeatherData {
	return s.weather.Get()
}

func (s *WeatherService) Status() models.Status {
	return s.status.Get()
}

func (s *WeatherService) Error() string {
	return s.err.Get()
}

// FetchWeather fetches conditions for the configured location, falling
// back to device geolocation when none is set.
func (s *WeatherService) FetchWeather(ctx context.Context) {
	location := s.settings.WeatherLocation()
	if location == nil {
		s.requestGeolocation(ctx)
		return
	}
	s.FetchWeatherForLocation(ctx, *location)
}

// requestGeolocation resolves the device position, reverse-geocodes it to
// a place name (best effort), stores it as the configured location, and
// fetches conditions. Each geolocation failure code surfaces its own
// message; nothing is retried automatically.
func (s *WeatherService) requestGeolocation(ctx context.Context) {
	s.status.Set(models.StatusLoading)

	location, err := s.geolocator.CurrentPosition(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrGeolocationDenied):
			s.fail("Location access denied. Please enable location or set a city in settings.")
		case errors.Is(err, ErrGeolocationUnavailable):
			s.fail("Location unavailable")
		case errors.Is(err, ErrGeolocationTimeout):
			s.fail("Location request timed out")
		default:
			s.fail("An unknown error occurred")
		}
		return
	}

	s.reverseGeocode(ctx, &location)
	s.settings.SetWeatherLocation(&location)
	s.FetchWeatherForLocation(ctx, location)
}

// reverseGeocode fills in city/country for raw coordinates. On failure the
// coordinates are kept as-is.
func (s *WeatherService) reverseGeocode(ctx context.Context, location *models.WeatherLocation) {
	query := fmt.Sprintf("%.2f,%.2f", location.Latitude, location.Longitude)
	results, err := s.geocoder.Search(ctx, query)
	if err != nil {
		log.Printf("Reverse geocode failed: %v", err)
		return
	}
	if len(results) > 0 {
		location.City = results[0].Name
		location.Country = results[0].Country
	}
}

// SearchCity resolves a free-text place name, saves the match as the
// configured location, and immediately fetches conditions for it. An
// empty or whitespace query is a no-op; no match is a Failed state.
func (s *WeatherService) SearchCity(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		return
	}

	s.status.Set(models.StatusLoading)
	s.err.Set("")

	results, err := s.geocoder.Search(ctx, query)
	if err != nil {
		log.Printf("City search failed: %v", err)
		s.fail("Failed to search for city")
		return
	}
	if len(results) == 0 {
		s.fail("City not found")
		return
	}

	match := results[0]
	location := models.WeatherLocation{
		Latitude:  match.Latitude,
		Longitude: match.Longitude,
		City:      match.Name,
		Country:   match.Country,
	}

	s.settings.SetWeatherLocation(&location)
	s.FetchWeatherForLocation(ctx, location)
}

// FetchWeatherForLocation is the terminal step of every path: fetch
// conditions and, on success, commit the reading to memory and the
// persisted cache, stamped with the current time.
func (s *WeatherService) FetchWeatherForLocation(ctx context.Context, location models.WeatherLocation) {
	s.status.Set(models.StatusLoading)
	s.err.Set("")

	current, err := s.conditions.Current(ctx, location.Latitude, location.Longitude)
	if err != nil {
		log.Printf("Conditions fetch failed: %v", err)
		s.fail("Failed to fetch weather data")
		return
	}

	label := location.City
	if label == "" {
		label = fmt.Sprintf("%.2f, %.2f", location.Latitude, location.Longitude)
	}

	data := &models.WeatherData{
		Temperature:         int(math.Round(current.Temperature)),
		ApparentTemperature: int(math.Round(current.ApparentTemperature)),
		WeatherCode:         current.WeatherCode,
		Humidity:            current.Humidity,
		WindSpeed:           int(math.Round(current.WindSpeed)),
		IsDay:               current.IsDay == 1,
		Location:            label,
		UpdatedAt:           s.now(),
	}

	s.weather.Set(data)
	s.storage.Save(database.KeyWeatherCache, data)
	s.err.Set("")
	s.status.Set(models.StatusReady)
}

// Refresh evicts both the persisted cache entry and the in-memory reading
// before re-fetching, bypassing the validity window.
func (s *WeatherService) Refresh(ctx context.Context) {
	s.storage.Remove(database.KeyWeatherCache)
	s.weather.Set(nil)
	s.FetchWeather(ctx)
}

func (s *WeatherService) fail(message string) {
	s.err.Set(message)
	s.status.Set(models.StatusFailed)
}
