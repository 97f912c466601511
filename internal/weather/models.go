package weather

import (
	"fmt"
	"slices"
)

// Condition is the free-form condition string carried by snapshots and forecasts.
// It is an open enum: any value is accepted and classified by IconFor.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionSunny        Condition = "sunny"
	ConditionRain         Condition = "rain"
	ConditionRainy        Condition = "rainy"
	ConditionCloudy       Condition = "cloudy"
	ConditionClouds       Condition = "clouds"
	ConditionOvercast     Condition = "overcast"
	ConditionSnow         Condition = "snow"
	ConditionSnowy        Condition = "snowy"
	ConditionDrizzle      Condition = "drizzle"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionThunder      Condition = "thunder"
)

const (
	// HoursPerDay is the fixed length of an hourly series.
	HoursPerDay = 24
	// ForecastDays is the fixed length of a daily forecast.
	ForecastDays = 7
)

// Snapshot is the current-instant weather record for one location.
type Snapshot struct {
	Location      string    `json:"location"`
	Country       string    `json:"country"`
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feelsLike"`
	Humidity      float64   `json:"humidity"`
	WindSpeed     float64   `json:"windSpeed"`
	Pressure      float64   `json:"pressure"`
	Condition     Condition `json:"condition"`
	Precipitation float64   `json:"precipitation"`
	Visibility    float64   `json:"visibility"`
	UVIndex       float64   `json:"uvIndex"`
	Sunrise       string    `json:"sunrise"` // HH:MM
	Sunset        string    `json:"sunset"`  // HH:MM
}

// CurrentConditions is the headline view of a snapshot.
type CurrentConditions struct {
	Location      string    `json:"location"`
	Country       string    `json:"country"`
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feelsLike"`
	Humidity      float64   `json:"humidity"`
	WindSpeed     float64   `json:"windSpeed"`
	Pressure      float64   `json:"pressure"`
	Condition     Condition `json:"condition"`
	Icon          Icon      `json:"icon"`
	Precipitation float64   `json:"precipitation"`
}

// Details is the secondary view of a snapshot. It overlaps CurrentConditions
// on feelsLike, humidity, windSpeed, pressure and precipitation.
type Details struct {
	FeelsLike     float64 `json:"feelsLike"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	Visibility    float64 `json:"visibility"`
	Pressure      float64 `json:"pressure"`
	UVIndex       float64 `json:"uvIndex"`
	Precipitation float64 `json:"precipitation"`
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`
}

// Current projects the snapshot into its headline view.
func (s Snapshot) Current() CurrentConditions {
	return CurrentConditions{
		Location:      s.Location,
		Country:       s.Country,
		Temperature:   s.Temperature,
		FeelsLike:     s.FeelsLike,
		Humidity:      s.Humidity,
		WindSpeed:     s.WindSpeed,
		Pressure:      s.Pressure,
		Condition:     s.Condition,
		Icon:          IconFor(s.Condition),
		Precipitation: s.Precipitation,
	}
}

// Details projects the snapshot into its detail view.
func (s Snapshot) Details() Details {
	return Details{
		FeelsLike:     s.FeelsLike,
		Humidity:      s.Humidity,
		WindSpeed:     s.WindSpeed,
		Visibility:    s.Visibility,
		Pressure:      s.Pressure,
		UVIndex:       s.UVIndex,
		Precipitation: s.Precipitation,
		Sunrise:       s.Sunrise,
		Sunset:        s.Sunset,
	}
}

// HourlyPoint is one entry of an hourly series; its index is the hour of day.
type HourlyPoint struct {
	Time        string    `json:"time"`
	Temperature float64   `json:"temperature"`
	Condition   Condition `json:"condition"`
	Icon        Icon      `json:"icon"`
}

// DailyForecast is one day of the multi-day forecast.
type DailyForecast struct {
	Date          string    `json:"date"` // YYYY-MM-DD
	Day           string    `json:"day"`
	TempMax       float64   `json:"tempMax"`
	TempMin       float64   `json:"tempMin"`
	Condition     Condition `json:"condition"`
	Icon          Icon      `json:"icon"`
	Humidity      float64   `json:"humidity"`
	Precipitation float64   `json:"precipitation"`
}

// TrendPoint is a single labelled value in a trend series.
type TrendPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// Trends groups the independently indexed series shown by the chart view.
type Trends struct {
	Temperature   []TrendPoint `json:"temperature"`
	Humidity      []TrendPoint `json:"humidity"`
	Precipitation []TrendPoint `json:"precipitation"`
}

// ChartMode selects which trend series the chart view displays.
type ChartMode string

const (
	ChartTemperature   ChartMode = "temperature"
	ChartHumidity      ChartMode = "humidity"
	ChartPrecipitation ChartMode = "precipitation"
)

// ParseChartMode maps a toggle value to a ChartMode, defaulting to temperature.
func ParseChartMode(s string) ChartMode {
	switch ChartMode(s) {
	case ChartHumidity:
		return ChartHumidity
	case ChartPrecipitation:
		return ChartPrecipitation
	default:
		return ChartTemperature
	}
}

// Series returns the series for mode.
func (t Trends) Series(mode ChartMode) []TrendPoint {
	switch mode {
	case ChartHumidity:
		return t.Humidity
	case ChartPrecipitation:
		return t.Precipitation
	default:
		return t.Temperature
	}
}

// Bundle is everything the dashboard renders for one location. It is always
// built from a single snapshot lookup.
type Bundle struct {
	Current CurrentConditions `json:"current"`
	Details Details           `json:"details"`
	Hourly  []HourlyPoint     `json:"hourly"`
	Daily   []DailyForecast   `json:"daily"`
	Trends  Trends            `json:"trends"`
}

// NewBundle assembles a bundle from a snapshot and its series. Icons are
// (re)derived from conditions so every view agrees on classification.
func NewBundle(s Snapshot, hourly []HourlyPoint, daily []DailyForecast, trends Trends) Bundle {
	b := Bundle{
		Current: s.Current(),
		Details: s.Details(),
		Hourly:  slices.Clone(hourly),
		Daily:   slices.Clone(daily),
		Trends: Trends{
			Temperature:   slices.Clone(trends.Temperature),
			Humidity:      slices.Clone(trends.Humidity),
			Precipitation: slices.Clone(trends.Precipitation),
		},
	}
	for i := range b.Hourly {
		b.Hourly[i].Icon = IconFor(b.Hourly[i].Condition)
	}
	for i := range b.Daily {
		b.Daily[i].Icon = IconFor(b.Daily[i].Condition)
	}
	return b
}

// Clone returns a deep copy so callers cannot alias a source's data.
func (b Bundle) Clone() Bundle {
	out := b
	out.Hourly = slices.Clone(b.Hourly)
	out.Daily = slices.Clone(b.Daily)
	out.Trends = Trends{
		Temperature:   slices.Clone(b.Trends.Temperature),
		Humidity:      slices.Clone(b.Trends.Humidity),
		Precipitation: slices.Clone(b.Trends.Precipitation),
	}
	return out
}

// Validate checks the fixed series lengths.
func (b Bundle) Validate() error {
	if len(b.Hourly) != HoursPerDay {
		return fmt.Errorf("%s: hourly series has %d entries, want %d", b.Current.Location, len(b.Hourly), HoursPerDay)
	}
	if len(b.Daily) != ForecastDays {
		return fmt.Errorf("%s: daily forecast has %d entries, want %d", b.Current.Location, len(b.Daily), ForecastDays)
	}
	return nil
}
