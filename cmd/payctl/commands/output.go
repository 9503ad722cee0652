package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/payments-client/internal/constants"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

func validOutput(format string) bool {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return true
	default:
		return false
	}
}

func encodeStructured(out io.Writer, value interface{}, format string) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case constants.FormatYAML:
		return yaml.NewEncoder(out).Encode(value)
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, format)
	}
}

// formatAmount renders minor units with the currency, e.g. "20.00 USD".
// Zero-decimal currencies are not special-cased.
func formatAmount(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, strings.ToUpper(currency))
}

func renderPaymentIntent(out io.Writer, intent *payments.PaymentIntent, format string) error {
	if format != constants.FormatTable {
		return encodeStructured(out, intent, format)
	}

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	_ = table.Append("ID", intent.ID)
	_ = table.Append("Status", string(intent.Status))
	_ = table.Append("Amount", formatAmount(intent.Amount, intent.Currency))
	_ = table.Append("Capturable", formatAmount(intent.AmountCapturable, intent.Currency))
	_ = table.Append("Received", formatAmount(intent.AmountReceived, intent.Currency))
	_ = table.Append("Capture Method", string(intent.CaptureMethod))
	_ = table.Append("Created", intent.CreatedAt().Format("2006-01-02 15:04:05"))
	_ = table.Append("Livemode", strconv.FormatBool(intent.Livemode))

	if intent.Customer != nil {
		_ = table.Append("Customer", intent.Customer.GetID())
	}

	if intent.PaymentMethod != nil {
		_ = table.Append("Payment Method", intent.PaymentMethod.GetID())
	}

	if intent.LatestCharge != nil {
		_ = table.Append("Latest Charge", intent.LatestCharge.GetID())
	}

	if intent.Description != nil {
		_ = table.Append("Description", *intent.Description)
	}

	if intent.CancellationReason != nil {
		_ = table.Append("Cancellation Reason", string(*intent.CancellationReason))
	}

	if intent.LastPaymentError != nil {
		_ = table.Append("Last Error", intent.LastPaymentError.Message)
	}

	for key, value := range intent.Metadata {
		_ = table.Append("metadata."+key, value)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderPaymentIntentList(out io.Writer, intents []*payments.PaymentIntent, hasMore bool, format string) error {
	if format != constants.FormatTable {
		return encodeStructured(out, intents, format)
	}

	if len(intents) == 0 {
		_, _ = fmt.Fprintln(out, "No payment intents found")

		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("ID", "Status", "Amount", "Customer", "Created")

	for _, intent := range intents {
		_ = table.Append(
			intent.ID,
			string(intent.Status),
			formatAmount(intent.Amount, intent.Currency),
			intent.Customer.GetID(),
			intent.CreatedAt().Format("2006-01-02 15:04:05"),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if hasMore {
		_, _ = fmt.Fprintf(out, "\nMore results available, use --starting-after %s or --all\n", intents[len(intents)-1].ID)
	}

	return nil
}
