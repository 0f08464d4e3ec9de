package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	mcp_golang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"

	"github.com/weatherapp/weather-mcp/internal/weather"
)

type stubFetcher struct {
	urls    []string
	payload json.RawMessage
	ok      bool
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (json.RawMessage, bool) {
	s.urls = append(s.urls, url)
	return s.payload, s.ok
}

func newTestServer(t *testing.T, fetcher weather.Fetcher) *Server {
	t.Helper()
	svc := weather.NewService(fetcher, "https://api.open-meteo.com/v1", "https://geocoding-api.open-meteo.com/v1")
	transport := stdio.NewStdioServerTransportWithIO(bytes.NewReader(nil), &bytes.Buffer{})
	srv, err := New(svc, transport)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return srv
}

func toolResponseText(t *testing.T, resp *mcp_golang.ToolResponse) string {
	t.Helper()
	if resp == nil || len(resp.Content) == 0 {
		t.Fatalf("expected content in tool response")
	}
	part := resp.Content[0]
	if part.TextContent == nil {
		t.Fatalf("expected text content, got %+v", part)
	}
	return part.TextContent.Text
}

func TestHandleCurrentWeatherReturnsPayloadText(t *testing.T) {
	payload := `{"current":{"temperature_2m":5.2}}`
	srv := newTestServer(t, &stubFetcher{payload: json.RawMessage(payload), ok: true})

	resp, err := srv.handleCurrentWeather(CurrentWeatherArgs{Latitude: 59.9139, Longitude: 10.7522})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := toolResponseText(t, resp); got != payload {
		t.Fatalf("payload altered: %s", got)
	}
}

func TestHandleCurrentWeatherAbsent(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{ok: false})

	resp, err := srv.handleCurrentWeather(CurrentWeatherArgs{Latitude: 0, Longitude: 0})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := toolResponseText(t, resp); got != "Unable to fetch current weather data for this location." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestHandleForecastDefaultsToOneDay(t *testing.T) {
	fetcher := &stubFetcher{payload: json.RawMessage(`{}`), ok: true}
	srv := newTestServer(t, fetcher)

	_, err := srv.handleForecast(ForecastArgs{Latitude: 59.9139, Longitude: 10.7522})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(fetcher.urls) != 1 || !strings.Contains(fetcher.urls[0], "forecast_days=1") {
		t.Fatalf("expected forecast_days=1 in url, got %v", fetcher.urls)
	}
}

func TestHandleForecastExplicitZeroIsRejected(t *testing.T) {
	fetcher := &stubFetcher{payload: json.RawMessage(`{}`), ok: true}
	srv := newTestServer(t, fetcher)

	zero := 0
	resp, err := srv.handleForecast(ForecastArgs{Latitude: 59.9139, Longitude: 10.7522, ForecastDays: &zero})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := toolResponseText(t, resp); got != "forecast_days must be between 1 and 16." {
		t.Fatalf("unexpected text: %q", got)
	}
	if len(fetcher.urls) != 0 {
		t.Fatalf("expected zero fetches, got %v", fetcher.urls)
	}
}

func TestHandleLocationDefaultsToFiveResults(t *testing.T) {
	fetcher := &stubFetcher{payload: json.RawMessage(`{"results":[]}`), ok: true}
	srv := newTestServer(t, fetcher)

	_, err := srv.handleLocation(LocationArgs{Name: "Oslo"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(fetcher.urls) != 1 || !strings.Contains(fetcher.urls[0], "count=5") {
		t.Fatalf("expected count=5 in url, got %v", fetcher.urls)
	}
}

func TestHandleLocationExplicitCountOutOfRange(t *testing.T) {
	fetcher := &stubFetcher{payload: json.RawMessage(`{}`), ok: true}
	srv := newTestServer(t, fetcher)

	eleven := 11
	resp, err := srv.handleLocation(LocationArgs{Name: "Oslo", Count: &eleven})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := toolResponseText(t, resp); got != "count must be between 1 and 10." {
		t.Fatalf("unexpected text: %q", got)
	}
	if len(fetcher.urls) != 0 {
		t.Fatalf("expected zero fetches, got %v", fetcher.urls)
	}
}

func TestHandleAbout(t *testing.T) {
	srv := newTestServer(t, &stubFetcher{})

	resp, err := srv.handleAbout()
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp == nil || len(resp.Contents) == 0 {
		t.Fatalf("expected resource contents")
	}
}
