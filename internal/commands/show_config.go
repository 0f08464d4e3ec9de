// internal/commands/show_config.go
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/weatherapp/weather-mcp/internal/appconfig"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			Debug:            viper.GetBool("debug"),
			LogFile:          viper.GetString("logFile"),
			TimeoutSeconds:   viper.GetInt("timeout"),
			UserAgent:        viper.GetString("userAgent"),
			ForecastAPIBase:  viper.GetString("forecastApiBase"),
			GeocodingAPIBase: viper.GetString("geocodingApiBase"),
			ServerBinary:     viper.GetString("serverBinary"),
		}
		var file string
		if cfg := GetConfig(); cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, GetConfig(), fallback)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
