package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is a selectable city. Value and Label follow the search option
// format: "<lat> <lon>" and "<name>, <countryCode>".
type Location struct {
	Name        string  `json:"name" example:"Rome"`
	Country     string  `json:"country" example:"Italy"`
	CountryCode string  `json:"country_code" example:"IT"`
	Lat         float64 `json:"lat" example:"41.8919"`
	Lon         float64 `json:"lon" example:"12.5113"`
	Label       string  `json:"label" example:"Rome, IT"`
}

func NewLocation(name, country, countryCode string, lat, lon float64) Location {
	return Location{
		Name:        name,
		Country:     country,
		CountryCode: countryCode,
		Lat:         lat,
		Lon:         lon,
		Label:       fmt.Sprintf("%s, %s", name, countryCode),
	}
}

func (l Location) Value() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + " " + strconv.FormatFloat(l.Lon, 'f', -1, 64)
}

// Option is the wire form of a Location in the search dropdown.
type Option struct {
	Value string `json:"value" example:"41.8919 12.5113"`
	Label string `json:"label" example:"Rome, IT"`
}

func (l Location) Option() Option {
	return Option{Value: l.Value(), Label: l.Label}
}

// ParseOption turns a selected option back into a Location.
func ParseOption(o Option) (Location, error) {
	parts := strings.Fields(o.Value)
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("option value %q: want \"<lat> <lon>\"", o.Value)
	}

	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("option value %q: invalid latitude", o.Value)
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || lon < -180 || lon > 180 {
		return Location{}, fmt.Errorf("option value %q: invalid longitude", o.Value)
	}

	loc := Location{Lat: lat, Lon: lon, Label: o.Label}
	if name, code, ok := strings.Cut(o.Label, ", "); ok {
		loc.Name, loc.CountryCode = name, code
	} else {
		loc.Name = o.Label
	}

	return loc, nil
}

// CityPage is one page of city search results.
type CityPage struct {
	Locations  []Location `json:"locations"`
	NextOffset int        `json:"next_offset" example:"10"`
	HasMore    bool       `json:"has_more" example:"true"`
}

func (p CityPage) Options() []Option {
	opts := make([]Option, 0, len(p.Locations))
	for _, l := range p.Locations {
		opts = append(opts, l.Option())
	}
	return opts
}
