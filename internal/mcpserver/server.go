// internal/mcpserver/server.go
// Package mcpserver registers the weather tools and the about resource
// with an MCP server over a given transport.
package mcpserver

import (
	"context"
	"fmt"

	mcp_golang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport"

	"github.com/weatherapp/weather-mcp/internal/logging"
	"github.com/weatherapp/weather-mcp/internal/weather"
)

const (
	// ServerName is the MCP server name advertised on initialize.
	ServerName = "weather"
	// ServerVersion is the advertised server version.
	ServerVersion = "1.0.0"
	// AboutURI addresses the static capability description resource.
	AboutURI = "resource://about"
)

// Tool names as advertised on tools/list.
const (
	CurrentWeatherToolName = "get_current_weather"
	ForecastToolName       = "get_forecast"
	LocationToolName       = "get_location"
)

// Defaults applied when an optional argument is omitted entirely. An
// explicit out-of-range value is still rejected by the dispatcher.
const (
	defaultForecastDays  = 1
	defaultLocationCount = 5
)

// CurrentWeatherArgs are the arguments for the current-weather tool.
type CurrentWeatherArgs struct {
	Latitude  float64 `json:"latitude" jsonschema:"required,description=Latitude of the location"`
	Longitude float64 `json:"longitude" jsonschema:"required,description=Longitude of the location"`
}

// ForecastArgs are the arguments for the hourly-forecast tool.
// ForecastDays is a pointer so that an omitted value takes the default
// while an explicit zero is rejected as out of range.
type ForecastArgs struct {
	Latitude     float64 `json:"latitude" jsonschema:"required,description=Latitude of the location"`
	Longitude    float64 `json:"longitude" jsonschema:"required,description=Longitude of the location"`
	ForecastDays *int    `json:"forecast_days,omitempty" jsonschema:"description=Number of days to include (1-16)"`
}

// LocationArgs are the arguments for the geocoding search tool.
type LocationArgs struct {
	Name  string `json:"name" jsonschema:"required,description=City or place name to search for"`
	Count *int   `json:"count,omitempty" jsonschema:"description=Maximum number of results (1-10)"`
}

// Server wires a weather.Service to an MCP server instance. Construct it
// with New and start it with Serve; there is no package-level state.
type Server struct {
	svc *weather.Service
	mcp *mcp_golang.Server
}

// New registers the three tools and the about resource on a fresh MCP
// server bound to t.
func New(svc *weather.Service, t transport.Transport) (*Server, error) {
	srv := mcp_golang.NewServer(t,
		mcp_golang.WithName(ServerName),
		mcp_golang.WithVersion(ServerVersion),
	)
	s := &Server{svc: svc, mcp: srv}

	if err := srv.RegisterTool(CurrentWeatherToolName,
		"Get current weather for a location.", s.handleCurrentWeather); err != nil {
		return nil, fmt.Errorf("register %s: %w", CurrentWeatherToolName, err)
	}
	if err := srv.RegisterTool(ForecastToolName,
		"Get an hourly forecast for a location.", s.handleForecast); err != nil {
		return nil, fmt.Errorf("register %s: %w", ForecastToolName, err)
	}
	if err := srv.RegisterTool(LocationToolName,
		"Find a location using the Open-Meteo Geocoding API.", s.handleLocation); err != nil {
		return nil, fmt.Errorf("register %s: %w", LocationToolName, err)
	}
	if err := srv.RegisterResource(AboutURI, "about",
		"Describe this MCP server and its capabilities.", "text/plain", s.handleAbout); err != nil {
		return nil, fmt.Errorf("register %s: %w", AboutURI, err)
	}

	return s, nil
}

// Serve starts handling protocol traffic on the transport.
func (s *Server) Serve() error {
	return s.mcp.Serve()
}

// The handlers are total: a dispatch outcome, payload or failure message,
// always becomes text content. No per-call cancellation comes in from the
// host, so the fetch runs under a background context bounded only by the
// gateway timeout.

func (s *Server) handleCurrentWeather(args CurrentWeatherArgs) (*mcp_golang.ToolResponse, error) {
	res := s.svc.CurrentWeather(context.Background(), args.Latitude, args.Longitude)
	logging.LogRequest("server->client", CurrentWeatherToolName, res.Text())
	return toolText(res.Text()), nil
}

func (s *Server) handleForecast(args ForecastArgs) (*mcp_golang.ToolResponse, error) {
	days := defaultForecastDays
	if args.ForecastDays != nil {
		days = *args.ForecastDays
	}
	res := s.svc.Forecast(context.Background(), args.Latitude, args.Longitude, days)
	logging.LogRequest("server->client", ForecastToolName, res.Text())
	return toolText(res.Text()), nil
}

func (s *Server) handleLocation(args LocationArgs) (*mcp_golang.ToolResponse, error) {
	count := defaultLocationCount
	if args.Count != nil {
		count = *args.Count
	}
	res := s.svc.Location(context.Background(), args.Name, count)
	logging.LogRequest("server->client", LocationToolName, res.Text())
	return toolText(res.Text()), nil
}

func (s *Server) handleAbout() (*mcp_golang.ResourceResponse, error) {
	return mcp_golang.NewResourceResponse(
		mcp_golang.NewTextEmbeddedResource(AboutURI, s.svc.About(), "text/plain")), nil
}

func toolText(text string) *mcp_golang.ToolResponse {
	return mcp_golang.NewToolResponse(mcp_golang.NewTextContent(text))
}
