package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	effective := fallback
	if cfg != nil {
		effective = *cfg
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:              %v\n", effective.Debug)
	fmt.Fprintf(out, "  Forecast API base:  %s\n", effective.ForecastBase())
	fmt.Fprintf(out, "  Geocoding API base: %s\n", effective.GeocodingBase())
	fmt.Fprintf(out, "  User agent:         %s\n", effective.UserAgentString())
	fmt.Fprintf(out, "  Request timeout:    %s\n", effective.RequestTimeout())
	if path := effective.LogFilePath(); path != "" {
		fmt.Fprintf(out, "  Log file:           %s\n", path)
	}
	if binary := effective.ServerBinaryPath(); binary != "" {
		fmt.Fprintf(out, "  Server binary:      %s\n", binary)
	}
}
