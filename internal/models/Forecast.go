package models

import "fmt"

// Current is the present conditions at a location.
type Current struct {
	City       string `json:"city" example:"Rome, IT"`
	Timezone   int    `json:"timezone" example:"3600"`
	Sunrise    int64  `json:"sunrise" example:"1704091680"`
	Sunset     int64  `json:"sunset" example:"1704125460"`
	Visibility int    `json:"visibility" example:"10000"`
	Sample
}

// Forecast is the ordered sample feed for a location, ascending by Dt.
type Forecast struct {
	City    string   `json:"city" example:"Rome"`
	Lat     float64  `json:"lat" example:"41.8919"`
	Lon     float64  `json:"lon" example:"12.5113"`
	Samples []Sample `json:"samples"`
}

func (f *Forecast) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f samples: %d", f.Lat, f.Lon, len(f.Samples))
}
