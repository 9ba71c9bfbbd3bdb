package forecast

// Condition is an OpenWeatherMap weather condition.
type Condition struct {
	Code        int
	Description string
	Icon        string
}

// Conditions is ordered by display priority: when a day has several
// descriptions, the one listed first here wins.
var Conditions = []Condition{
	{200, "thunderstorm with light rain", "11d"},
	{201, "thunderstorm with rain", "11d"},
	{202, "thunderstorm with heavy rain", "11d"},
	{210, "light thunderstorm", "11d"},
	{211, "thunderstorm", "11d"},
	{212, "heavy thunderstorm", "11d"},
	{221, "ragged thunderstorm", "11d"},
	{230, "thunderstorm with light drizzle", "11d"},
	{231, "thunderstorm with drizzle", "11d"},
	{232, "thunderstorm with heavy drizzle", "11d"},

	{300, "light intensity drizzle", "09d"},
	{301, "drizzle", "09d"},
	{302, "heavy intensity drizzle", "09d"},
	{310, "light intensity drizzle rain", "09d"},
	{311, "drizzle rain", "09d"},
	{312, "heavy intensity drizzle rain", "09d"},
	{313, "shower rain and drizzle", "09d"},
	{314, "heavy shower rain and drizzle", "09d"},
	{321, "shower drizzle", "09d"},

	{500, "light rain", "10d"},
	{501, "moderate rain", "10d"},
	{502, "heavy intensity rain", "10d"},
	{503, "very heavy rain", "10d"},
	{504, "extreme rain", "10d"},
	{511, "freezing rain", "13d"},
	{520, "light intensity shower rain", "09d"},
	{521, "shower rain", "09d"},
	{522, "heavy intensity shower rain", "09d"},
	{531, "ragged shower rain", "09d"},

	{600, "light snow", "13d"},
	{601, "snow", "13d"},
	{602, "heavy snow", "13d"},
	{611, "sleet", "13d"},
	{612, "light shower sleet", "13d"},
	{613, "shower sleet", "13d"},
	{615, "light rain and snow", "13d"},
	{616, "rain and snow", "13d"},
	{620, "light shower snow", "13d"},
	{621, "shower snow", "13d"},
	{622, "heavy shower snow", "13d"},

	{701, "mist", "50d"},
	{711, "smoke", "50d"},
	{721, "haze", "50d"},
	{731, "sand/dust whirls", "50d"},
	{741, "fog", "50d"},
	{751, "sand", "50d"},
	{761, "dust", "50d"},
	{762, "volcanic ash", "50d"},
	{771, "squalls", "50d"},
	{781, "tornado", "50d"},

	{800, "clear sky", "01d"},
	{801, "few clouds", "02d"},
	{802, "scattered clouds", "03d"},
	{803, "broken clouds", "04d"},
	{804, "overcast clouds", "04d"},
}

const unknownIcon = "unknown"

var iconByDescription = func() map[string]string {
	m := make(map[string]string, len(Conditions))
	for _, c := range Conditions {
		m[c.Description] = c.Icon
	}
	return m
}()

// Descriptions returns the catalog descriptions in priority order.
func Descriptions() []string {
	out := make([]string, 0, len(Conditions))
	for _, c := range Conditions {
		out = append(out, c.Description)
	}
	return out
}

// IconFor maps a description to its day icon, or "unknown".
func IconFor(description string) string {
	if icon, ok := iconByDescription[description]; ok {
		return icon
	}
	return unknownIcon
}
