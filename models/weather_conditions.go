package models

// WeatherCondition describes a WMO weather code for display.
type WeatherCondition struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// WeatherConditions maps Open-Meteo WMO weather codes to display info.
var WeatherConditions = map[int]WeatherCondition{
	0:  {Label: "Clear sky", Icon: "sun"},
	1:  {Label: "Mainly clear", Icon: "sun"},
	2:  {Label: "Partly cloudy", Icon: "cloud-sun"},
	3:  {Label: "Overcast", Icon: "cloud"},
	45: {Label: "Fog", Icon: "fog"},
	48: {Label: "Depositing rime fog", Icon: "fog"},
	51: {Label: "Light drizzle", Icon: "drizzle"},
	53: {Label: "Moderate drizzle", Icon: "drizzle"},
	55: {Label: "Dense drizzle", Icon: "drizzle"},
	56: {Label: "Light freezing drizzle", Icon: "drizzle"},
	57: {Label: "Dense freezing drizzle", Icon: "drizzle"},
	61: {Label: "Slight rain", Icon: "rain"},
	63: {Label: "Moderate rain", Icon: "rain"},
	65: {Label: "Heavy rain", Icon: "rain"},
	66: {Label: "Light freezing rain", Icon: "rain"},
	67: {Label: "Heavy freezing rain", Icon: "rain"},
	71: {Label: "Slight snow", Icon: "snow"},
	73: {Label: "Moderate snow", Icon: "snow"},
	75: {Label: "Heavy snow", Icon: "snow"},
	77: {Label: "Snow grains", Icon: "snow"},
	80: {Label: "Slight rain showers", Icon: "rain"},
	81: {Label: "Moderate rain showers", Icon: "rain"},
	82: {Label: "Violent rain showers", Icon: "rain"},
	85: {Label: "Slight snow showers", Icon: "snow"},
	86: {Label: "Heavy snow showers", Icon: "snow"},
	95: {Label: "Thunderstorm", Icon: "storm"},
	96: {Label: "Thunderstorm with slight hail", Icon: "storm"},
	99: {Label: "Thunderstorm with heavy hail", Icon: "storm"},
}

// ConditionForCode returns the display info for a weather code,
// falling back to clear sky for unknown codes.
func ConditionForCode(code int) WeatherCondition {
	if c, ok := WeatherConditions[code]; ok {
		return c
	}
	return WeatherConditions[0]
}
