package handlers

import (
	"encoding/json"
	"net/http"

	"dashpad/models"
	"dashpad/services"
)

type WeatherHandlers struct {
	weather *services.WeatherService
}

func NewWeatherHandlers(weather *services.WeatherService) *WeatherHandlers {
	return &WeatherHandlers{weather: weather}
}

func (wh *WeatherHandlers) weatherState() map[string]interface{} {
	state := map[string]interface{}{
		"weather": wh.weather.Weather(),
		"status":  wh.weather.Status().String(),
		"error":   wh.weather.Error(),
	}
	if data := wh.weather.Weather(); data != nil {
		state["condition"] = models.ConditionForCode(data.WeatherCode)
	}
	return state
}

func (wh *WeatherHandlers) GetWeather(w http.ResponseWriter, r *http.Request) {
	respondData(w, wh.weatherState())
}

func (wh *WeatherHandlers) FetchWeather(w http.ResponseWriter, r *http.Request) {
	wh.weather.FetchWeather(r.Context())
	respondData(w, wh.weatherState())
}

func (wh *WeatherHandlers) RefreshWeather(w http.ResponseWriter, r *http.Request) {
	wh.weather.Refresh(r.Context())
	respondData(w, wh.weatherState())
}

func (wh *WeatherHandlers) SearchCity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid search payload")
		return
	}

	wh.weather.SearchCity(r.Context(), body.Query)
	respondData(w, wh.weatherState())
}
