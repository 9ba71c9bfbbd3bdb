package models

// HourlyEntry is one slot of the same-day hourly strip.
type HourlyEntry struct {
	Dt          int64   `json:"dt" example:"1704124800"`
	Time        string  `json:"time" example:"14:00"`
	Temperature float64 `json:"temperature" example:"9.3"`
	Description string  `json:"description" example:"few clouds"`
	Icon        string  `json:"icon" example:"02d"`
}

// DailySummary is one card of the weekly forecast.
type DailySummary struct {
	Date        string  `json:"date" example:"2024-01-02"`
	Day         string  `json:"day" example:"Tuesday"`
	Temperature float64 `json:"temperature" example:"11.2"`
	TempMin     float64 `json:"temp_min" example:"4.8"`
	Humidity    float64 `json:"humidity" example:"72.5"`
	WindSpeed   float64 `json:"wind_speed" example:"2.9"`
	Clouds      float64 `json:"clouds" example:"40"`
	Description string  `json:"description" example:"light rain"`
	Icon        string  `json:"icon" example:"10d"`
}
