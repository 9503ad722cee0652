package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/payments-client/cmd/payctl/commands"
	"github.com/fivetwenty-io/payments-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "payctl",
	Short: "Payments API CLI",
	Long: `A command-line interface for the payment intents API.

Create, inspect, confirm, capture and cancel payment intents from the
terminal. Credentials come from 'payctl login', PAYCTL_* environment
variables, a .env file or flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.payctl/config.yml)")
	flags.String("api-base", "", "API base URL")
	flags.StringP("api-key", "k", "", "secret API key")
	flags.String("account", "", "connected account to act on behalf of")
	flags.String("api-version", "", "API version header")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP requests and responses")
	flags.Int("retries", 0, "retry 429/5xx/connection errors this many times")
	flags.Float64("rate-limit", 0, "maximum requests per second (0 disables)")

	bindings := map[string]string{
		"config":      "config",
		"api_base":    "api-base",
		"api_key":     "api-key",
		"account":     "account",
		"api_version": "api-version",
		"output":      "output",
		"verbose":     "verbose",
		"retry_max":   "retries",
		"rate_limit":  "rate-limit",
	}

	for key, flag := range bindings {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewPaymentIntentsCommand())
}

func initConfig() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, constants.ConfigDirName)

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName(constants.ConfigFileName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
