package services

import (
	"dashpad/database"
	"dashpad/models"
	"dashpad/store"
)

// Section names accepted by ToggleSection.
const (
	SectionWeather     = "weather"
	SectionNews        = "news"
	SectionQuickLinks  = "quickLinks"
	SectionBookmarks   = "bookmarks"
	SectionReadingList = "readingList"
)

// SettingsService is the single source of truth for user preferences.
// Other services read from it but never own it.
type SettingsService struct {
	storage  database.Store
	settings *store.Store[models.UserSettings]
}

func NewSettingsService(storage database.Store) *SettingsService {
	settings := models.DefaultSettings()
	storage.Load(database.KeySettings, &settings)

	s := &SettingsService{
		storage:  storage,
		settings: store.New(settings),
	}
	s.settings.OnChange(func(v models.UserSettings) {
		storage.Save(database.KeySettings, v)
	})
	return s
}

func (s *SettingsService) Settings() models.UserSettings {
	return s.settings.Get()
}

func (s *SettingsService) Theme() models.Theme {
	return s.settings.Get().Theme
}

func (s *SettingsService) SearchEngine() models.SearchEngine {
	return s.settings.Get().SearchEngine
}

func (s *SettingsService) WeatherLocation() *models.WeatherLocation {
	return s.settings.Get().WeatherLocation
}

func (s *SettingsService) UserName() string {
	return s.settings.Get().UserName
}

// OnChange registers a listener for settings changes.
func (s *SettingsService) OnChange(fn func(models.UserSettings)) {
	s.settings.OnChange(fn)
}

func (s *SettingsService) SetTheme(theme models.Theme) {
	s.settings.Update(func(v models.UserSettings) models.UserSettings {
		v.Theme = theme
		return v
	})
}

func (s *SettingsService) ToggleTheme() {
	s.settings.Update(func(v models.UserSettings) models.UserSettings {
		if v.Theme == models.ThemeDark {
			v.Theme = models.ThemeLight
		} else {
			v.Theme = models.ThemeDark
		}
		return v
	})
}

func (s *SettingsService) SetSearchEngine(engine models.SearchEngine) {
	s.settings.Update(func(v models.UserSettings) models.UserSettings {
		v.SearchEngine = engine
		return v
	})
}

func (s *SettingsService) SetWeatherLocation(location *models.WeatherLocation) {
	s.settings.Update(func(v models.UserSettings) models.UserSettings {
		v.WeatherLocation = location
		return v
	})
}

func (s *SettingsService) SetUserName(name string) {
	s.settings.Update(func(v models.UserSettings) models.UserSettings {
		v.UserName = name
		return v
	})
}

// ToggleSection flips one of the dashboard visibility flags. Unknown
// section names are a silent no-op.
func (s *SettingsService) ToggleSection(section string) {
	s.settings.Update(func(v models.UserSettings) models.UserSettings {
		switch section {
		case SectionWeather:
			v.ShowWeather = !v.ShowWeather
		case SectionNews:
			v.ShowNews = !v.ShowNews
		case SectionQuickLinks:
			v.ShowQuickLinks = !v.ShowQuickLinks
		case SectionBookmarks:
			v.ShowBookmarks = !v.ShowBookmarks
		case SectionReadingList:
			v.ShowReadingList = !v.ShowReadingList
		}
		return v
	})
}

// Replace swaps the whole settings object, the only write granularity the
// persisted record has.
func (s *SettingsService) Replace(settings models.UserSettings) {
	s.settings.Set(settings)
}

func (s *SettingsService) ResetSettings() {
	s.settings.Set(models.DefaultSettings())
}
