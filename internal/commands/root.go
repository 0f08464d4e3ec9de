// internal/commands/root.go
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/weatherapp/weather-mcp/internal/appconfig"
	"github.com/weatherapp/weather-mcp/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "weather-mcp",
	Short: "weather-mcp — Open-Meteo weather tools over the Model Context Protocol",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlagOverrides(&cfg, cmd.Flags())
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (defaults to config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file (stderr only when unset)")
	rootCmd.PersistentFlags().Int("timeout", 0, "upstream request timeout in seconds (0 = default)")
	rootCmd.PersistentFlags().String("userAgent", "", "User-Agent header sent to the Open-Meteo APIs")
	rootCmd.PersistentFlags().String("forecastApiBase", "", "override the forecast API base URL")
	rootCmd.PersistentFlags().String("geocodingApiBase", "", "override the geocoding API base URL")
	rootCmd.PersistentFlags().String("serverBinary", "", "server binary the check harness should spawn")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("userAgent", rootCmd.PersistentFlags().Lookup("userAgent"))
	_ = viper.BindPFlag("forecastApiBase", rootCmd.PersistentFlags().Lookup("forecastApiBase"))
	_ = viper.BindPFlag("geocodingApiBase", rootCmd.PersistentFlags().Lookup("geocodingApiBase"))
	_ = viper.BindPFlag("serverBinary", rootCmd.PersistentFlags().Lookup("serverBinary"))
}

// applyFlagOverrides layers explicitly set flags over the file-loaded config.
func applyFlagOverrides(cfg *appconfig.Config, flags flagSet) {
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("logFile") {
		cfg.LogFile, _ = flags.GetString("logFile")
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds, _ = flags.GetInt("timeout")
	}
	if flags.Changed("userAgent") {
		cfg.UserAgent, _ = flags.GetString("userAgent")
	}
	if flags.Changed("forecastApiBase") {
		cfg.ForecastAPIBase, _ = flags.GetString("forecastApiBase")
	}
	if flags.Changed("geocodingApiBase") {
		cfg.GeocodingAPIBase, _ = flags.GetString("geocodingApiBase")
	}
	if flags.Changed("serverBinary") {
		cfg.ServerBinary, _ = flags.GetString("serverBinary")
	}
}

// flagSet is the slice of pflag.FlagSet the overrides need; narrowed for tests.
type flagSet interface {
	Changed(name string) bool
	GetBool(name string) (bool, error)
	GetString(name string) (string, error)
	GetInt(name string) (int, error)
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }
