package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dashpad/models"
)

// Geolocation failure taxonomy. Each code maps to a distinct user-facing
// message in the weather service.
var (
	ErrGeolocationDenied      = errors.New("geolocation permission denied")
	ErrGeolocationUnavailable = errors.New("geolocation unavailable")
	ErrGeolocationTimeout     = errors.New("geolocation timed out")
)

// Geolocator resolves the device's current position. The dashboard host
// injects a real implementation when it has one; the default reports
// unavailable so users fall back to a configured city.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (models.WeatherLocation, error)
}

// NoGeolocation is the shipped Geolocator for hosts without a positioning
// capability.
type NoGeolocation struct{}

func (NoGeolocation) CurrentPosition(context.Context) (models.WeatherLocation, error) {
	return models.WeatherLocation{}, ErrGeolocationUnavailable
}

// GeocodeResult is one match from a place-name search.
type GeocodeResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]GeocodeResult, error)
}

// CurrentConditions is the raw conditions reading for a coordinate pair.
type CurrentConditions struct {
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	WeatherCode         int     `json:"weather_code"`
	Humidity            float64 `json:"relative_humidity_2m"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	IsDay               int     `json:"is_day"`
}

// ConditionsProvider fetches current conditions by coordinates.
type ConditionsProvider interface {
	Current(ctx context.Context, latitude, longitude float64) (CurrentConditions, error)
}

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// OpenMeteo implements Geocoder and ConditionsProvider against the
// Open-Meteo public APIs. Base URLs are settable so tests can point at a
// local server.
type OpenMeteo struct {
	Client       *http.Client
	GeocodingURL string
	ForecastURL  string
}

func NewOpenMeteo() *OpenMeteo {
	return &OpenMeteo{
		Client:       &http.Client{Timeout: 15 * time.Second},
		GeocodingURL: defaultGeocodingURL,
		ForecastURL:  defaultForecastURL,
	}
}

func (o *OpenMeteo) Search(ctx context.Context, query string) ([]GeocodeResult, error) {
	endpoint := fmt.Sprintf("%s?name=%s&count=1", o.GeocodingURL, url.QueryEscape(query))

	var response struct {
		Results []GeocodeResult `json:"results"`
	}
	if err := o.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

func (o *OpenMeteo) Current(ctx context.Context, latitude, longitude float64) (CurrentConditions, error) {
	endpoint := fmt.Sprintf(
		"%s?latitude=%v&longitude=%v&current=temperature_2m,apparent_temperature,weather_code,relative_humidity_2m,wind_speed_10m,is_day",
		o.ForecastURL, latitude, longitude,
	)

	var response struct {
		Current CurrentConditions `json:"current"`
	}
	if err := o.getJSON(ctx, endpoint, &response); err != nil {
		return CurrentConditions{}, err
	}
	return response.Current, nil
}

func (o *OpenMeteo) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %v", err)
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}
