package weather

// WeatherResponse is the current conditions payload returned by the provider.
type WeatherResponse struct {
	Weather []Condition `json:"weather"`
	Main    Main        `json:"main"`
	Name    string      `json:"name"`
	Wind    Wind        `json:"wind"`
}

// Condition describes the sky, e.g. "light rain" with icon "10d".
type Condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Main holds the temperature block of a provider payload.
type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
	Pressure  int     `json:"pressure"`
}

// Wind holds the wind block of a provider payload.
type Wind struct {
	Speed float64 `json:"speed"`
}

// ForecastResponse is the 5 day / 3 hour forecast payload.
type ForecastResponse struct {
	List []ForecastResponseItem `json:"list"`
}

// ForecastResponseItem is a single forecast step. Dt is a unix timestamp in seconds.
type ForecastResponseItem struct {
	Dt      int64       `json:"dt"`
	Main    Main        `json:"main"`
	Weather []Condition `json:"weather"`
}

// MainInfo is the summary shown for a city in lists.
type MainInfo struct {
	City string `json:"city"`
	Temp int    `json:"temp"`
	Main string `json:"main"`
	Icon string `json:"icon"`
}

// Detailed is the summary plus the secondary readings of a city.
type Detailed struct {
	Weather   MainInfo `json:"weather"`
	WindSpeed float64  `json:"wind_speed"`
	FeelsLike int      `json:"feels_like"`
	Humidity  int      `json:"humidity"`
	Pressure  int      `json:"pressure"`
}

// ForecastItem is a formatted forecast step.
type ForecastItem struct {
	Temp int    `json:"temp"`
	Icon string `json:"icon"`
	Date string `json:"date"`
}

// Forecast is the detailed weather of a city and its upcoming steps.
type Forecast struct {
	Detailed
	List []ForecastItem `json:"list"`
}

// Wrapped pairs data with a message describing where it came from.
type Wrapped[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// firstCondition returns the first condition, or an empty one.
func firstCondition(conds []Condition) Condition {
	if len(conds) == 0 {
		return Condition{}
	}
	return conds[0]
}

func toMainInfo(w WeatherResponse) MainInfo {
	cond := firstCondition(w.Weather)
	return MainInfo{
		City: w.Name,
		Temp: int(w.Main.Temp),
		Main: cond.Description,
		Icon: cond.Icon,
	}
}

func toDetailed(w WeatherResponse) Detailed {
	return Detailed{
		Weather:   toMainInfo(w),
		WindSpeed: w.Wind.Speed,
		FeelsLike: int(w.Main.FeelsLike),
		Humidity:  w.Main.Humidity,
		Pressure:  w.Main.Pressure,
	}
}
