// internal/commands/check.go
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/weatherapp/weather-mcp/internal/mcpclient"
	"github.com/weatherapp/weather-mcp/internal/mcpserver"
)

// Fallback coordinates (Oslo) when the geocoding lookup yields nothing.
const (
	fallbackLatitude  = 59.9139
	fallbackLongitude = 10.7522
)

// checkCmd spawns the server and drives the full tool scenario through a
// real stdio session: location search, current weather, forecast, about.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Exercise the weather tools end to end against a spawned server",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	out := cmd.OutOrStdout()
	heading := color.New(color.FgCyan, color.Bold)

	binary := cfg.ServerBinaryPath()
	var serverArgs []string
	if binary == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolve server binary: %w", err)
		}
		binary = exe
		serverArgs = append(serverArgs, "serve")
		if cfg.ConfigPath != "" {
			serverArgs = append(serverArgs, "--config", cfg.ConfigPath)
		}
	}

	ctx := cmd.Context()
	client, err := mcpclient.Start(ctx, binary, serverArgs...)
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	tools, err := client.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("tools/list: %w", err)
	}
	heading.Fprintln(out, "=== tools/list ===")
	for _, tool := range tools {
		fmt.Fprintf(out, "- %s: %s\n", tool.Name, tool.Description)
	}

	location, err := client.CallTool(ctx, mcpserver.LocationToolName,
		map[string]any{"name": "Oslo", "count": 3})
	if err != nil {
		return fmt.Errorf("%s: %w", mcpserver.LocationToolName, err)
	}
	printResult(out, heading, mcpserver.LocationToolName, location)

	latitude, longitude, found := firstCoordinates(location)
	if !found {
		latitude, longitude = fallbackLatitude, fallbackLongitude
	}

	current, err := client.CallTool(ctx, mcpserver.CurrentWeatherToolName,
		map[string]any{"latitude": latitude, "longitude": longitude})
	if err != nil {
		return fmt.Errorf("%s: %w", mcpserver.CurrentWeatherToolName, err)
	}
	printResult(out, heading, mcpserver.CurrentWeatherToolName, current)

	forecast, err := client.CallTool(ctx, mcpserver.ForecastToolName,
		map[string]any{"latitude": latitude, "longitude": longitude, "forecast_days": 2})
	if err != nil {
		return fmt.Errorf("%s: %w", mcpserver.ForecastToolName, err)
	}
	printResult(out, heading, mcpserver.ForecastToolName, forecast)

	about, err := client.ReadResource(ctx, mcpserver.AboutURI)
	if err != nil {
		return fmt.Errorf("read %s: %w", mcpserver.AboutURI, err)
	}
	printResult(out, heading, mcpserver.AboutURI, about)

	return nil
}

func printResult(out io.Writer, heading *color.Color, label, body string) {
	heading.Fprintf(out, "\n=== %s ===\n", label)
	fmt.Fprintln(out, body)
}

// firstCoordinates pulls the first geocoding match out of a get_location
// payload. A failure string or an empty result set reports found == false.
func firstCoordinates(payload string) (latitude, longitude float64, found bool) {
	var decoded struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return 0, 0, false
	}
	if len(decoded.Results) == 0 {
		return 0, 0, false
	}
	return decoded.Results[0].Latitude, decoded.Results[0].Longitude, true
}
