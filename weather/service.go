package weather

import (
	"context"
	"time"

	"github.com/goodsign/monday"
)

// DateLayout formats forecast step times, e.g. "2 January 15:04".
// Month names follow the service locale.
const DateLayout = "2 January 15:04"

// DefaultCities is the fixed list shown on the main screen.
var DefaultCities = []string{
	"Kazan",
	"Moscow",
	"Saint Petersburg",
	"Novosibirsk",
	"Yekaterinburg",
	"Sochi",
}

// Service implements the weather use cases on top of a Repository.
type Service struct {
	repo     *Repository
	cities   []string
	location *time.Location
	locale   monday.Locale
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCities replaces the default city list.
func WithCities(cities []string) ServiceOption {
	return func(s *Service) {
		if len(cities) > 0 {
			s.cities = append([]string(nil), cities...)
		}
	}
}

// WithLocation sets the time zone used to format forecast dates.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLanguage sets the language forecast month names are rendered in.
// Unknown or unsupported tags fall back to DefaultLocale.
func WithLanguage(lang string) ServiceOption {
	return func(s *Service) {
		s.locale = LocaleFor(lang)
	}
}

// NewService creates the use case layer.
func NewService(repo *Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		cities:   DefaultCities,
		location: time.Local,
		locale:   DefaultLocale,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cities returns the configured city list.
func (s *Service) Cities() []string {
	return append([]string(nil), s.cities...)
}

// ListCities returns a summary for every configured city.
func (s *Service) ListCities(ctx context.Context) ([]MainInfo, error) {
	list, err := s.repo.CitiesWeather(ctx, s.cities)
	if err != nil {
		return nil, err
	}

	out := make([]MainInfo, len(list))
	for i, w := range list {
		out[i] = toMainInfo(w)
	}
	return out, nil
}

// CityWeather returns detailed weather for city together with where it came from.
func (s *Service) CityWeather(ctx context.Context, city string) (Wrapped[Detailed], error) {
	w, err := s.repo.Weather(ctx, city)
	if err != nil {
		return Wrapped[Detailed]{}, err
	}
	return Wrapped[Detailed]{Data: toDetailed(w.Data), Message: w.Message}, nil
}

// CityForecast returns detailed weather for city and its forecast steps.
func (s *Service) CityForecast(ctx context.Context, city string) (Forecast, error) {
	w, err := s.repo.Weather(ctx, city)
	if err != nil {
		return Forecast{}, err
	}

	steps, err := s.repo.Forecast(ctx, city)
	if err != nil {
		return Forecast{}, err
	}

	items := make([]ForecastItem, len(steps))
	for i, step := range steps {
		items[i] = ForecastItem{
			Temp: int(step.Main.Temp),
			Icon: firstCondition(step.Weather).Icon,
			Date: s.formatTimestamp(step.Dt),
		}
	}

	return Forecast{Detailed: toDetailed(w.Data), List: items}, nil
}

func (s *Service) formatTimestamp(unix int64) string {
	return monday.Format(time.Unix(unix, 0).In(s.location), DateLayout, s.locale)
}
