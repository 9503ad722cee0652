package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/payments-client/internal/constants"
)

// Config represents the CLI configuration file.
type Config struct {
	APIBase        string     `json:"api_base,omitempty"         yaml:"api_base,omitempty"`
	APIKey         string     `json:"api_key,omitempty"          yaml:"api_key,omitempty"`
	ClientID       string     `json:"client_id,omitempty"        yaml:"client_id,omitempty"`
	ClientSecret   string     `json:"client_secret,omitempty"    yaml:"client_secret,omitempty"`
	TokenURL       string     `json:"token_url,omitempty"        yaml:"token_url,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	Account        string     `json:"account,omitempty"          yaml:"account,omitempty"`
	APIVersion     string     `json:"api_version,omitempty"      yaml:"api_version,omitempty"`
	Output         string     `json:"output,omitempty"           yaml:"output,omitempty"`
	RetryMax       int        `json:"retry_max,omitempty"        yaml:"retry_max,omitempty"`
}

// configKeys are the keys accepted by 'config set' and 'config unset'.
var configKeys = map[string]func(*Config, string) error{
	"api_base":      func(c *Config, v string) error { c.APIBase = v; return nil },
	"api_key":       func(c *Config, v string) error { c.APIKey = v; return nil },
	"client_id":     func(c *Config, v string) error { c.ClientID = v; return nil },
	"client_secret": func(c *Config, v string) error { c.ClientSecret = v; return nil },
	"token_url":     func(c *Config, v string) error { c.TokenURL = v; return nil },
	"account":       func(c *Config, v string) error { c.Account = v; return nil },
	"api_version":   func(c *Config, v string) error { c.APIVersion = v; return nil },
	"output": func(c *Config, v string) error {
		if v != "" && !validOutput(v) {
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, v)
		}

		c.Output = v

		return nil
	},
	"retry_max": func(c *Config, v string) error {
		if v == "" {
			c.RetryMax = 0

			return nil
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("retry_max must be a number: %w", err)
		}

		c.RetryMax = n

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in $HOME/.payctl/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the stored configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readConfigFile()
			if err != nil {
				return err
			}

			return renderConfig(cmd.OutOrStdout(), maskConfig(config), viper.GetString("output"))
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeyNames(), ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd.OutOrStdout(), args[0], args[1], "Set")
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + strings.Join(configKeyNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd.OutOrStdout(), args[0], "", "Unset")
		},
	}
}

func updateConfig(out io.Writer, key, value, verb string) error {
	setter, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	config, err := readConfigFile()
	if err != nil {
		return err
	}

	err = setter(config, value)
	if err != nil {
		return err
	}

	err = saveConfigStruct(config)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s %s\n", verb, key)

	return nil
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for name := range configKeys {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// effectiveConfig merges the config file with PAYCTL_* environment variables
// and flags, as resolved by viper.
func effectiveConfig() *Config {
	config := &Config{
		APIBase:      viper.GetString("api_base"),
		APIKey:       viper.GetString("api_key"),
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		TokenURL:     viper.GetString("token_url"),
		Token:        viper.GetString("token"),
		Account:      viper.GetString("account"),
		APIVersion:   viper.GetString("api_version"),
		Output:       viper.GetString("output"),
		RetryMax:     viper.GetInt("retry_max"),
	}

	if expiresAt := viper.GetTime("token_expires_at"); !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	return config
}

// configFilePath returns the file the CLI reads and writes.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+".yml"), nil
}

// readConfigFile loads only what is stored on disk, so that saving it back
// never persists values that came from flags or the environment.
func readConfigFile() (*Config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return nil, err
	}

	// configFile is derived from the user's home directory or --config.
	// #nosec G304
	data, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// maskSecret keeps only the last few characters of a secret visible.
func maskSecret(secret string) string {
	if len(secret) <= constants.MaskVisibleSuffix {
		return strings.Repeat("*", len(secret))
	}

	return strings.Repeat("*", len(secret)-constants.MaskVisibleSuffix) + secret[len(secret)-constants.MaskVisibleSuffix:]
}

func maskConfig(config *Config) *Config {
	masked := *config
	masked.APIKey = maskSecret(config.APIKey)
	masked.ClientSecret = maskSecret(config.ClientSecret)
	masked.Token = maskSecret(config.Token)

	return &masked
}

func renderConfig(out io.Writer, config *Config, format string) error {
	switch format {
	case constants.FormatJSON, constants.FormatYAML:
		return encodeStructured(out, config, format)
	default:
		table := tablewriter.NewWriter(out)
		table.Header("Key", "Value")

		rows := [][]string{
			{"api_base", config.APIBase},
			{"api_key", config.APIKey},
			{"client_id", config.ClientID},
			{"client_secret", config.ClientSecret},
			{"token_url", config.TokenURL},
			{"token", config.Token},
			{"account", config.Account},
			{"api_version", config.APIVersion},
			{"output", config.Output},
			{"retry_max", strconv.Itoa(config.RetryMax)},
		}

		for _, row := range rows {
			if row[1] == "" {
				continue
			}

			_ = table.Append(row[0], row[1])
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}
