package models

// Sample is one timestamped reading from the 3-hour forecast feed.
type Sample struct {
	Dt            int64   `json:"dt" example:"1704103200"`
	DtTxt         string  `json:"dt_txt,omitempty" example:"2024-01-01 10:00:00"`
	Temp          float64 `json:"temp" example:"7.4"`
	FeelsLike     float64 `json:"feels_like" example:"5.1"`
	TempMin       float64 `json:"temp_min" example:"6.9"`
	TempMax       float64 `json:"temp_max" example:"8.2"`
	Humidity      float64 `json:"humidity" example:"81"`
	Pressure      float64 `json:"pressure" example:"1016"`
	WindSpeed     float64 `json:"wind_speed" example:"3.6"`
	Clouds        float64 `json:"clouds" example:"75"`
	ConditionCode int     `json:"condition_code" example:"803"`
	Description   string  `json:"description" example:"broken clouds"`
	Icon          string  `json:"icon" example:"04d"`
}
