package store

import (
	"fmt"
	"math"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// wave describes base + amp*sin(hour/period).
type wave struct {
	base, amp, period float64
}

func (w wave) at(hour int) float64 {
	return w.base + math.Sin(float64(hour)/w.period)*w.amp
}

// rainWindow describes offset + |sin(hour)*amp| for from < hour < to, else 0.
type rainWindow struct {
	from, to    int
	offset, amp float64
}

func (r rainWindow) at(hour int) float64 {
	if hour > r.from && hour < r.to {
		return r.offset + math.Abs(math.Sin(float64(hour))*r.amp)
	}
	return 0
}

type sample struct {
	snapshot      weather.Snapshot
	temperature   wave
	humidity      wave
	precipitation rainWindow
	hourlySky     func(hour int) weather.Condition
	daily         []weather.DailyForecast
}

func day(date, name string, max, min float64, c weather.Condition, humidity, precip float64) weather.DailyForecast {
	return weather.DailyForecast{
		Date:          date,
		Day:           name,
		TempMax:       max,
		TempMin:       min,
		Condition:     c,
		Humidity:      humidity,
		Precipitation: precip,
	}
}

func between(from, to int, inside, outside weather.Condition) func(int) weather.Condition {
	return func(h int) weather.Condition {
		if h > from && h < to {
			return inside
		}
		return outside
	}
}

func hourLabel(h int) string {
	return fmt.Sprintf("%d:00", h)
}

func (s sample) bundle() weather.Bundle {
	hourly := make([]weather.HourlyPoint, weather.HoursPerDay)
	trends := weather.Trends{
		Temperature:   make([]weather.TrendPoint, weather.HoursPerDay),
		Humidity:      make([]weather.TrendPoint, weather.HoursPerDay),
		Precipitation: make([]weather.TrendPoint, weather.HoursPerDay),
	}
	for h := 0; h < weather.HoursPerDay; h++ {
		label := hourLabel(h)
		temp := s.temperature.at(h)
		hourly[h] = weather.HourlyPoint{Time: label, Temperature: temp, Condition: s.hourlySky(h)}
		trends.Temperature[h] = weather.TrendPoint{Time: label, Value: temp}
		trends.Humidity[h] = weather.TrendPoint{Time: label, Value: s.humidity.at(h)}
		trends.Precipitation[h] = weather.TrendPoint{Time: label, Value: s.precipitation.at(h)}
	}
	return weather.NewBundle(s.snapshot, hourly, s.daily, trends)
}

// SampleBundles returns the built-in sample data keyed by location name.
func SampleBundles() map[string]weather.Bundle {
	out := make(map[string]weather.Bundle, len(samples))
	for key, s := range samples {
		out[key] = s.bundle()
	}
	return out
}

var samples = map[string]sample{
	"new york": {
		snapshot: weather.Snapshot{
			Location: "New York", Country: "USA",
			Temperature: 24, FeelsLike: 26, Humidity: 65, WindSpeed: 12, Pressure: 1014,
			Condition: weather.ConditionCloudy, Precipitation: 0.2, Visibility: 9.5, UVIndex: 3,
			Sunrise: "06:45", Sunset: "19:27",
		},
		temperature:   wave{base: 18, amp: 7, period: 3},
		humidity:      wave{base: 50, amp: 30, period: 4},
		precipitation: rainWindow{from: 12, to: 18, amp: 5},
		hourlySky:     between(6, 20, weather.ConditionCloudy, weather.ConditionClear),
		daily: []weather.DailyForecast{
			day("2023-06-01", "Mon", 26, 18, weather.ConditionCloudy, 70, 0.1),
			day("2023-06-02", "Tue", 28, 17, weather.ConditionRainy, 80, 12.5),
			day("2023-06-03", "Wed", 22, 16, weather.ConditionRainy, 85, 8.2),
			day("2023-06-04", "Thu", 24, 17, weather.ConditionCloudy, 65, 0),
			day("2023-06-05", "Fri", 26, 19, weather.ConditionSunny, 50, 0),
			day("2023-06-06", "Sat", 27, 20, weather.ConditionSunny, 45, 0),
			day("2023-06-07", "Sun", 25, 19, weather.ConditionCloudy, 60, 0.5),
		},
	},
	"london": {
		snapshot: weather.Snapshot{
			Location: "London", Country: "UK",
			Temperature: 18, FeelsLike: 17, Humidity: 78, WindSpeed: 18, Pressure: 1008,
			Condition: weather.ConditionRainy, Precipitation: 2.4, Visibility: 6.2, UVIndex: 2,
			Sunrise: "05:15", Sunset: "20:45",
		},
		temperature:   wave{base: 14, amp: 5, period: 4},
		humidity:      wave{base: 65, amp: 20, period: 3},
		precipitation: rainWindow{from: 8, to: 18, offset: 0.5, amp: 3},
		hourlySky: func(h int) weather.Condition {
			if h > 8 && h < 18 && h%3 == 0 {
				return weather.ConditionRainy
			}
			return weather.ConditionCloudy
		},
		daily: []weather.DailyForecast{
			day("2023-06-01", "Mon", 19, 14, weather.ConditionRainy, 80, 3.2),
			day("2023-06-02", "Tue", 17, 13, weather.ConditionRainy, 85, 5.1),
			day("2023-06-03", "Wed", 16, 12, weather.ConditionCloudy, 75, 1.0),
			day("2023-06-04", "Thu", 18, 13, weather.ConditionCloudy, 70, 0.5),
			day("2023-06-05", "Fri", 20, 14, weather.ConditionSunny, 65, 0),
			day("2023-06-06", "Sat", 21, 15, weather.ConditionSunny, 60, 0),
			day("2023-06-07", "Sun", 19, 14, weather.ConditionCloudy, 70, 0.2),
		},
	},
	"tokyo": {
		snapshot: weather.Snapshot{
			Location: "Tokyo", Country: "Japan",
			Temperature: 28, FeelsLike: 30, Humidity: 70, WindSpeed: 8, Pressure: 1012,
			Condition: weather.ConditionClear, Precipitation: 0, Visibility: 10, UVIndex: 8,
			Sunrise: "04:30", Sunset: "18:50",
		},
		temperature:   wave{base: 22, amp: 8, period: 3},
		humidity:      wave{base: 60, amp: 15, period: 4},
		precipitation: rainWindow{from: 16, to: 24, amp: 2},
		hourlySky:     between(6, 19, weather.ConditionSunny, weather.ConditionClear),
		daily: []weather.DailyForecast{
			day("2023-06-01", "Mon", 29, 22, weather.ConditionSunny, 65, 0),
			day("2023-06-02", "Tue", 30, 23, weather.ConditionSunny, 60, 0),
			day("2023-06-03", "Wed", 31, 24, weather.ConditionSunny, 63, 0),
			day("2023-06-04", "Thu", 30, 24, weather.ConditionCloudy, 70, 0),
			day("2023-06-05", "Fri", 29, 23, weather.ConditionRainy, 80, 3.5),
			day("2023-06-06", "Sat", 28, 22, weather.ConditionRainy, 85, 8.2),
			day("2023-06-07", "Sun", 27, 22, weather.ConditionCloudy, 75, 1.1),
		},
	},
	"sydney": {
		snapshot: weather.Snapshot{
			Location: "Sydney", Country: "Australia",
			Temperature: 22, FeelsLike: 24, Humidity: 55, WindSpeed: 15, Pressure: 1016,
			Condition: weather.ConditionSunny, Precipitation: 0, Visibility: 15, UVIndex: 6,
			Sunrise: "06:50", Sunset: "17:15",
		},
		temperature:   wave{base: 18, amp: 6, period: 4},
		humidity:      wave{base: 45, amp: 15, period: 3},
		precipitation: rainWindow{from: 18, to: 24, amp: 1.5},
		hourlySky:     between(7, 18, weather.ConditionSunny, weather.ConditionClear),
		daily: []weather.DailyForecast{
			day("2023-06-01", "Mon", 23, 15, weather.ConditionSunny, 50, 0),
			day("2023-06-02", "Tue", 25, 16, weather.ConditionSunny, 45, 0),
			day("2023-06-03", "Wed", 24, 17, weather.ConditionSunny, 50, 0),
			day("2023-06-04", "Thu", 22, 16, weather.ConditionCloudy, 60, 0),
			day("2023-06-05", "Fri", 21, 15, weather.ConditionCloudy, 65, 0.3),
			day("2023-06-06", "Sat", 19, 14, weather.ConditionRainy, 75, 2.8),
			day("2023-06-07", "Sun", 18, 13, weather.ConditionRainy, 80, 5.2),
		},
	},
	"paris": {
		snapshot: weather.Snapshot{
			Location: "Paris", Country: "France",
			Temperature: 21, FeelsLike: 22, Humidity: 60, WindSpeed: 10, Pressure: 1013,
			Condition: weather.ConditionCloudy, Precipitation: 0, Visibility: 12, UVIndex: 4,
			Sunrise: "05:55", Sunset: "21:35",
		},
		temperature:   wave{base: 16, amp: 7, period: 3},
		humidity:      wave{base: 55, amp: 20, period: 4},
		precipitation: rainWindow{from: 16, to: 22, amp: 2.5},
		hourlySky: func(h int) weather.Condition {
			if h > 8 && h < 17 && h%2 == 0 {
				return weather.ConditionSunny
			}
			return weather.ConditionCloudy
		},
		daily: []weather.DailyForecast{
			day("2023-06-01", "Mon", 22, 16, weather.ConditionCloudy, 60, 0),
			day("2023-06-02", "Tue", 24, 15, weather.ConditionSunny, 55, 0),
			day("2023-06-03", "Wed", 26, 17, weather.ConditionSunny, 50, 0),
			day("2023-06-04", "Thu", 25, 18, weather.ConditionCloudy, 55, 0),
			day("2023-06-05", "Fri", 23, 16, weather.ConditionRainy, 70, 2.1),
			day("2023-06-06", "Sat", 21, 15, weather.ConditionRainy, 75, 3.8),
			day("2023-06-07", "Sun", 22, 16, weather.ConditionCloudy, 65, 0.5),
		},
	},
}
