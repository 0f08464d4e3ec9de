// internal/commands/serve.go
package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/metoro-io/mcp-golang/transport/stdio"
	"github.com/spf13/cobra"

	"github.com/weatherapp/weather-mcp/internal/logging"
	"github.com/weatherapp/weather-mcp/internal/mcpserver"
	"github.com/weatherapp/weather-mcp/internal/openmeteo"
	"github.com/weatherapp/weather-mcp/internal/weather"
)

// serveCmd runs the MCP server on stdin/stdout until the host closes the
// stream or the process receives an interrupt.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the weather tools over stdio",
	Long: `Serve the MCP weather server on standard input/output.

Exposes get_current_weather, get_forecast and get_location plus the
resource://about resource to the connected MCP host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		client := openmeteo.NewClient(cfg.RequestTimeout(), cfg.UserAgentString())
		svc := weather.NewService(client, cfg.ForecastBase(), cfg.GeocodingBase())

		srv, err := mcpserver.New(svc, stdio.NewStdioServerTransport())
		if err != nil {
			return fmt.Errorf("build mcp server: %w", err)
		}
		if err := srv.Serve(); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		logging.LogEvent("MCP server %s %s listening on stdio", mcpserver.ServerName, mcpserver.ServerVersion)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logging.LogEvent("MCP server shutting down")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
