// internal/weather/service.go
// Package weather dispatches the tool operations against the Open-Meteo
// forecast and geocoding APIs.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// The variable lists are part of the wire contract with the upstream API
// and must not be reordered.
const (
	currentVariables = "temperature_2m,is_day,showers,cloud_cover,wind_speed_10m," +
		"wind_direction_10m,pressure_msl,snowfall,precipitation," +
		"relative_humidity_2m,apparent_temperature,rain,weather_code," +
		"surface_pressure,wind_gusts_10m"
	hourlyVariables = "temperature_2m,relative_humidity_2m,precipitation," +
		"weather_code,wind_speed_10m"
)

const (
	msgCurrentWeatherUnavailable = "Unable to fetch current weather data for this location."
	msgForecastUnavailable       = "Unable to fetch forecast data for this location."
	msgLocationUnavailable       = "Unable to fetch location data."
	msgForecastDaysRange         = "forecast_days must be between 1 and 16."
	msgCountRange                = "count must be between 1 and 10."
)

const aboutText = "Open-Meteo MCP server exposing tools for current weather, forecasts, " +
	"and geocoding-based location lookup."

// Fetcher retrieves the JSON body behind a fully-formed URL, reporting
// ok == false for every failure mode without further detail.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (json.RawMessage, bool)
}

// Result is the outcome of one tool operation: either the upstream JSON
// payload passed through unmodified, or a short failure message. Exactly
// one of the two is set.
type Result struct {
	Payload json.RawMessage
	Message string
}

// OK reports whether the result carries a payload rather than a failure message.
func (r Result) OK() bool { return r.Message == "" }

// Text returns the wire form of the result: the raw JSON payload on
// success, the failure message otherwise.
func (r Result) Text() string {
	if r.OK() {
		return string(r.Payload)
	}
	return r.Message
}

func succeed(payload json.RawMessage) Result { return Result{Payload: payload} }

func fail(message string) Result { return Result{Message: message} }

// Service owns the per-operation URL construction and the mapping from
// gateway outcomes to tool results. It holds no mutable state; concurrent
// calls are independent.
type Service struct {
	fetcher       Fetcher
	forecastBase  string
	geocodingBase string
}

// NewService builds a Service that fetches through fetcher against the
// given API bases (without trailing slashes).
func NewService(fetcher Fetcher, forecastBase, geocodingBase string) *Service {
	return &Service{
		fetcher:       fetcher,
		forecastBase:  strings.TrimRight(forecastBase, "/"),
		geocodingBase: strings.TrimRight(geocodingBase, "/"),
	}
}

// CurrentWeather returns the current conditions for a coordinate pair.
// Coordinates are forwarded verbatim; the upstream API decides whether
// they are in range.
func (s *Service) CurrentWeather(ctx context.Context, latitude, longitude float64) Result {
	url := fmt.Sprintf("%s/forecast?latitude=%s&longitude=%s&current=%s",
		s.forecastBase, formatCoordinate(latitude), formatCoordinate(longitude), currentVariables)

	data, ok := s.fetcher.Fetch(ctx, url)
	if !ok {
		return fail(msgCurrentWeatherUnavailable)
	}
	return succeed(data)
}

// Forecast returns an hourly forecast covering forecastDays days. The
// day count is validated before any network traffic.
func (s *Service) Forecast(ctx context.Context, latitude, longitude float64, forecastDays int) Result {
	if forecastDays < 1 || forecastDays > 16 {
		return fail(msgForecastDaysRange)
	}

	url := fmt.Sprintf("%s/forecast?latitude=%s&longitude=%s&hourly=%s&timezone=auto&forecast_days=%d",
		s.forecastBase, formatCoordinate(latitude), formatCoordinate(longitude), hourlyVariables, forecastDays)

	data, ok := s.fetcher.Fetch(ctx, url)
	if !ok {
		return fail(msgForecastUnavailable)
	}
	return succeed(data)
}

// Location searches the geocoding API for a place name, returning at most
// count matches. The count is validated before any network traffic.
func (s *Service) Location(ctx context.Context, name string, count int) Result {
	if count < 1 || count > 10 {
		return fail(msgCountRange)
	}

	// Parameter order is fixed; url.Values would alphabetize it.
	searchURL := fmt.Sprintf("%s/search?name=%s&count=%d&language=en&format=json",
		s.geocodingBase, url.QueryEscape(name), count)

	data, ok := s.fetcher.Fetch(ctx, searchURL)
	if !ok {
		return fail(msgLocationUnavailable)
	}
	return succeed(data)
}

// About describes the server's capabilities.
func (s *Service) About() string { return aboutText }

// formatCoordinate renders a degree value with the shortest decimal
// representation that round-trips.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
