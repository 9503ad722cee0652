package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/payments-client/internal/constants"
	"github.com/fivetwenty-io/payments-client/pkg/payclient"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		clientID     string
		clientSecret string
		tokenURL     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store API credentials",
		Long: `Verify credentials against the API and store them in the config file.

With --api-key (or PAYCTL_API_KEY) the secret key is used directly. With
--client-id, --client-secret and --token-url, access tokens are obtained
with the OAuth2 client credentials grant. Without either, the secret key
is read from the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			login := &Config{
				APIBase:      viper.GetString("api_base"),
				APIKey:       viper.GetString("api_key"),
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenURL:     tokenURL,
				Account:      viper.GetString("account"),
				APIVersion:   viper.GetString("api_version"),
			}

			if login.ClientID != "" {
				login.APIKey = ""

				if login.TokenURL == "" {
					return constants.ErrTokenURLRequired
				}
			} else if login.APIKey == "" {
				key, err := promptSecret("API key: ")
				if err != nil {
					return err
				}

				login.APIKey = key
			}

			if login.ClientID == "" && login.APIKey == "" {
				return constants.ErrEmptyAPIKey
			}

			err := verifyCredentials(cmd, login)
			if err != nil {
				return err
			}

			stored, err := readConfigFile()
			if err != nil {
				return err
			}

			if login.APIBase != "" {
				stored.APIBase = login.APIBase
			}

			stored.APIKey = login.APIKey
			stored.ClientID = login.ClientID
			stored.ClientSecret = login.ClientSecret
			stored.TokenURL = login.TokenURL
			stored.Token = ""
			stored.TokenExpiresAt = nil

			err = saveConfigStruct(stored)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", payclient.NormalizeAPIBase(stored.APIBase))

			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")
	cmd.Flags().StringVar(&tokenURL, "token-url", "", "OAuth2 token endpoint")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Long:  "Remove the API key, client secret and cached token from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readConfigFile()
			if err != nil {
				return err
			}

			config.APIKey = ""
			config.ClientSecret = ""
			config.Token = ""
			config.TokenExpiresAt = nil

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

// verifyCredentials lists a single payment intent with the new credentials.
func verifyCredentials(cmd *cobra.Command, login *Config) error {
	paymentsClient, err := payclient.New(cmd.Context(), buildPaymentsConfig(login))
	if err != nil {
		return err
	}

	params := &payments.PaymentIntentListParams{}
	params.Limit = payments.Int64(1)

	_, err = paymentsClient.PaymentIntents().List(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	return nil
}

func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(int(os.Stdin.Fd()))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}
