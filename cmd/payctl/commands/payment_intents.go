package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/payments-client/internal/constants"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// NewPaymentIntentsCommand creates the payment intents command group.
func NewPaymentIntentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment-intents",
		Aliases: []string{"pi", "intents"},
		Short:   "Manage payment intents",
		Long:    "Create, inspect, confirm, capture and cancel payment intents",
	}

	cmd.AddCommand(newPaymentIntentsCreateCommand())
	cmd.AddCommand(newPaymentIntentsGetCommand())
	cmd.AddCommand(newPaymentIntentsUpdateCommand())
	cmd.AddCommand(newPaymentIntentsListCommand())
	cmd.AddCommand(newPaymentIntentsConfirmCommand())
	cmd.AddCommand(newPaymentIntentsCaptureCommand())
	cmd.AddCommand(newPaymentIntentsCancelCommand())

	return cmd
}

func newPaymentIntentsCreateCommand() *cobra.Command {
	var (
		amount             int64
		currency           string
		customer           string
		description        string
		paymentMethod      string
		paymentMethodTypes []string
		captureMethod      string
		confirm            bool
		metadata           []string
		receiptEmail       string
		idempotencyKey     string
		expand             []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment intent",
		Long:  "Create a payment intent for an amount in the currency's smallest unit",
		Example: `  payctl payment-intents create --amount 2000 --currency usd
  payctl pi create --amount 500 --currency eur --customer cus_123 --metadata order_id=6735`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			if !flags.Changed("amount") {
				return constants.ErrAmountRequired
			}

			if currency == "" {
				return constants.ErrCurrencyRequired
			}

			meta, err := parseMetadata(metadata)
			if err != nil {
				return err
			}

			params := &payments.PaymentIntentCreateParams{
				Amount:             payments.Int64(amount),
				Currency:           payments.String(strings.ToLower(currency)),
				Customer:           optionalString(flags, "customer", customer),
				Description:        optionalString(flags, "description", description),
				PaymentMethod:      optionalString(flags, "payment-method", paymentMethod),
				PaymentMethodTypes: paymentMethodTypes,
				CaptureMethod:      optionalString(flags, "capture-method", captureMethod),
				ReceiptEmail:       optionalString(flags, "receipt-email", receiptEmail),
				Metadata:           meta,
			}
			params.Expand = expand
			params.Options = idempotencyOptions(idempotencyKey)

			if flags.Changed("confirm") {
				params.Confirm = payments.Bool(confirm)
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			intent, err := client.PaymentIntents().Create(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create payment intent: %w", err)
			}

			return renderPaymentIntent(cmd.OutOrStdout(), intent, viper.GetString("output"))
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in the smallest currency unit (required)")
	cmd.Flags().StringVar(&currency, "currency", "", "three-letter ISO currency code (required)")
	cmd.Flags().StringVar(&customer, "customer", "", "customer ID")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&paymentMethod, "payment-method", "", "payment method ID")
	cmd.Flags().StringSliceVar(&paymentMethodTypes, "payment-method-types", nil, "allowed payment method types (comma-separated)")
	cmd.Flags().StringVar(&captureMethod, "capture-method", "", "automatic, automatic_async or manual")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the payment intent immediately")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "metadata as key=value (repeatable)")
	cmd.Flags().StringVar(&receiptEmail, "receipt-email", "", "email address to send the receipt to")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "idempotency key for safe retries")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "relations to expand")

	return cmd
}

func newPaymentIntentsGetCommand() *cobra.Command {
	var (
		clientSecret string
		expand       []string
	)

	cmd := &cobra.Command{
		Use:   "get PAYMENT_INTENT_ID",
		Short: "Get a payment intent",
		Long:  "Display detailed information about a payment intent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &payments.PaymentIntentRetrieveParams{
				ClientSecret: optionalString(cmd.Flags(), "client-secret", clientSecret),
			}
			params.Expand = expand

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			intent, err := client.PaymentIntents().Get(cmd.Context(), payments.ID(args[0]), params)
			if err != nil {
				return fmt.Errorf("failed to get payment intent: %w", err)
			}

			return renderPaymentIntent(cmd.OutOrStdout(), intent, viper.GetString("output"))
		},
	}

	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "client secret, required with a publishable key")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "relations to expand")

	return cmd
}

func newPaymentIntentsUpdateCommand() *cobra.Command {
	var (
		amount         int64
		currency       string
		customer       string
		description    string
		paymentMethod  string
		metadata       []string
		receiptEmail   string
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   "update PAYMENT_INTENT_ID",
		Short: "Update a payment intent",
		Long:  "Update a payment intent. Only flags that are given are sent; an empty value clears the field.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			meta, err := parseMetadata(metadata)
			if err != nil {
				return err
			}

			params := &payments.PaymentIntentUpdateParams{
				Currency:      optionalString(flags, "currency", strings.ToLower(currency)),
				Customer:      optionalString(flags, "customer", customer),
				Description:   optionalString(flags, "description", description),
				PaymentMethod: optionalString(flags, "payment-method", paymentMethod),
				ReceiptEmail:  optionalString(flags, "receipt-email", receiptEmail),
				Metadata:      meta,
			}
			params.Options = idempotencyOptions(idempotencyKey)

			if flags.Changed("amount") {
				params.Amount = payments.Int64(amount)
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			intent, err := client.PaymentIntents().Update(cmd.Context(), payments.ID(args[0]), params)
			if err != nil {
				return fmt.Errorf("failed to update payment intent: %w", err)
			}

			return renderPaymentIntent(cmd.OutOrStdout(), intent, viper.GetString("output"))
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "new amount in the smallest currency unit")
	cmd.Flags().StringVar(&currency, "currency", "", "new currency")
	cmd.Flags().StringVar(&customer, "customer", "", "customer ID")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&paymentMethod, "payment-method", "", "payment method ID")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "metadata as key=value, an empty value removes the key (repeatable)")
	cmd.Flags().StringVar(&receiptEmail, "receipt-email", "", "email address to send the receipt to")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "idempotency key for safe retries")

	return cmd
}

func newPaymentIntentsListCommand() *cobra.Command {
	var (
		limit         int64
		startingAfter string
		endingBefore  string
		customer      string
		createdGTE    int64
		createdLTE    int64
		allPages      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payment intents",
		Long:  "List payment intents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			params := &payments.PaymentIntentListParams{
				Customer: optionalString(flags, "customer", customer),
			}
			params.StartingAfter = optionalString(flags, "starting-after", startingAfter)
			params.EndingBefore = optionalString(flags, "ending-before", endingBefore)

			if flags.Changed("limit") {
				params.Limit = payments.Int64(limit)
			}

			if flags.Changed("created-gte") || flags.Changed("created-lte") {
				params.Created = &payments.RangeQueryParams{
					GreaterThanOrEqual: createdGTE,
					LesserThanOrEqual:  createdLTE,
				}
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			output := viper.GetString("output")

			if allPages {
				intents, err := client.PaymentIntents().ListAll(cmd.Context(), params).All()
				if err != nil {
					return fmt.Errorf("failed to list payment intents: %w", err)
				}

				return renderPaymentIntentList(cmd.OutOrStdout(), intents, false, output)
			}

			page, err := client.PaymentIntents().List(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to list payment intents: %w", err)
			}

			return renderPaymentIntentList(cmd.OutOrStdout(), page.Data, page.HasMore, output)
		},
	}

	cmd.Flags().Int64Var(&limit, "limit", constants.DefaultPageSize, "page size, 1 to 100")
	cmd.Flags().StringVar(&startingAfter, "starting-after", "", "cursor: list intents after this ID")
	cmd.Flags().StringVar(&endingBefore, "ending-before", "", "cursor: list intents before this ID")
	cmd.Flags().StringVar(&customer, "customer", "", "only intents for this customer")
	cmd.Flags().Int64Var(&createdGTE, "created-gte", 0, "only intents created at or after this Unix time")
	cmd.Flags().Int64Var(&createdLTE, "created-lte", 0, "only intents created at or before this Unix time")
	cmd.Flags().BoolVar(&allPages, "all", false, "follow cursors and fetch every page")

	return cmd
}

func newPaymentIntentsConfirmCommand() *cobra.Command {
	var (
		paymentMethod  string
		returnURL      string
		offSession     bool
		receiptEmail   string
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   "confirm PAYMENT_INTENT_ID",
		Short: "Confirm a payment intent",
		Long:  "Confirm that the customer intends to pay with the attached or given payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			params := &payments.PaymentIntentConfirmParams{
				PaymentMethod: optionalString(flags, "payment-method", paymentMethod),
				ReturnURL:     optionalString(flags, "return-url", returnURL),
				ReceiptEmail:  optionalString(flags, "receipt-email", receiptEmail),
			}
			params.Options = idempotencyOptions(idempotencyKey)

			if flags.Changed("off-session") {
				params.OffSession = payments.Bool(offSession)
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			intent, err := client.PaymentIntents().Confirm(cmd.Context(), payments.ID(args[0]), params)
			if err != nil {
				return fmt.Errorf("failed to confirm payment intent: %w", err)
			}

			return renderPaymentIntent(cmd.OutOrStdout(), intent, viper.GetString("output"))
		},
	}

	cmd.Flags().StringVar(&paymentMethod, "payment-method", "", "payment method ID")
	cmd.Flags().StringVar(&returnURL, "return-url", "", "URL to redirect to after authentication")
	cmd.Flags().BoolVar(&offSession, "off-session", false, "the customer is not present")
	cmd.Flags().StringVar(&receiptEmail, "receipt-email", "", "email address to send the receipt to")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "idempotency key for safe retries")

	return cmd
}

func newPaymentIntentsCaptureCommand() *cobra.Command {
	var (
		amountToCapture int64
		idempotencyKey  string
	)

	cmd := &cobra.Command{
		Use:   "capture PAYMENT_INTENT_ID",
		Short: "Capture a payment intent",
		Long:  "Capture the funds of a payment intent in status requires_capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &payments.PaymentIntentCaptureParams{}
			params.Options = idempotencyOptions(idempotencyKey)

			if cmd.Flags().Changed("amount-to-capture") {
				params.AmountToCapture = payments.Int64(amountToCapture)
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			intent, err := client.PaymentIntents().Capture(cmd.Context(), payments.ID(args[0]), params)
			if err != nil {
				return fmt.Errorf("failed to capture payment intent: %w", err)
			}

			return renderPaymentIntent(cmd.OutOrStdout(), intent, viper.GetString("output"))
		},
	}

	cmd.Flags().Int64Var(&amountToCapture, "amount-to-capture", 0, "amount to capture, defaults to the full capturable amount")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "idempotency key for safe retries")

	return cmd
}

func newPaymentIntentsCancelCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel PAYMENT_INTENT_ID",
		Short: "Cancel a payment intent",
		Long:  "Cancel a payment intent that has not succeeded yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &payments.PaymentIntentCancelParams{
				CancellationReason: optionalString(cmd.Flags(), "reason", reason),
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			intent, err := client.PaymentIntents().Cancel(cmd.Context(), payments.ID(args[0]), params)
			if err != nil {
				return fmt.Errorf("failed to cancel payment intent: %w", err)
			}

			return renderPaymentIntent(cmd.OutOrStdout(), intent, viper.GetString("output"))
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "duplicate, fraudulent, requested_by_customer or abandoned")

	return cmd
}

// optionalString returns a pointer to value only when the flag was given,
// so that an explicit empty value reaches the API.
func optionalString(flags *pflag.FlagSet, name, value string) *string {
	if !flags.Changed(name) {
		return nil
	}

	return payments.String(value)
}

func idempotencyOptions(key string) *payments.RequestOptions {
	if key == "" {
		return nil
	}

	return &payments.RequestOptions{IdempotencyKey: key}
}

func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	metadata := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidMetadata, pair)
		}

		metadata[strings.TrimSpace(key)] = value
	}

	return metadata, nil
}
