package payments

import (
	"context"
	"time"
)

// PaymentIntentStatus is the lifecycle state of a payment intent.
type PaymentIntentStatus string

// Payment intent statuses.
const (
	PaymentIntentStatusRequiresPaymentMethod PaymentIntentStatus = "requires_payment_method"
	PaymentIntentStatusRequiresConfirmation  PaymentIntentStatus = "requires_confirmation"
	PaymentIntentStatusRequiresAction        PaymentIntentStatus = "requires_action"
	PaymentIntentStatusProcessing            PaymentIntentStatus = "processing"
	PaymentIntentStatusRequiresCapture       PaymentIntentStatus = "requires_capture"
	PaymentIntentStatusCanceled              PaymentIntentStatus = "canceled"
	PaymentIntentStatusSucceeded             PaymentIntentStatus = "succeeded"
)

// IsTerminal reports whether no further transition is possible.
func (s PaymentIntentStatus) IsTerminal() bool {
	return s == PaymentIntentStatusCanceled || s == PaymentIntentStatusSucceeded
}

// CaptureMethod controls when funds are captured.
type CaptureMethod string

// Capture methods.
const (
	CaptureMethodAutomatic      CaptureMethod = "automatic"
	CaptureMethodAutomaticAsync CaptureMethod = "automatic_async"
	CaptureMethodManual         CaptureMethod = "manual"
)

// ConfirmationMethod controls who may confirm the payment intent.
type ConfirmationMethod string

// Confirmation methods.
const (
	ConfirmationMethodAutomatic ConfirmationMethod = "automatic"
	ConfirmationMethodManual    ConfirmationMethod = "manual"
)

// CancellationReason explains why a payment intent was canceled.
type CancellationReason string

// Cancellation reasons.
const (
	CancellationReasonAbandoned           CancellationReason = "abandoned"
	CancellationReasonAutomatic           CancellationReason = "automatic"
	CancellationReasonDuplicate           CancellationReason = "duplicate"
	CancellationReasonFailedInvoice       CancellationReason = "failed_invoice"
	CancellationReasonFraudulent          CancellationReason = "fraudulent"
	CancellationReasonRequestedByCustomer CancellationReason = "requested_by_customer"
	CancellationReasonVoidInvoice         CancellationReason = "void_invoice"
)

// SetupFutureUsage indicates how the payment method will be reused.
type SetupFutureUsage string

// Setup future usage values.
const (
	SetupFutureUsageOffSession SetupFutureUsage = "off_session"
	SetupFutureUsageOnSession  SetupFutureUsage = "on_session"
)

// PaymentIntent guides the collection of a single payment from a customer.
type PaymentIntent struct {
	ID                        string                     `json:"id"                          yaml:"id"`
	Object                    string                     `json:"object"                      yaml:"object"`
	Amount                    int64                      `json:"amount"                      yaml:"amount"`
	AmountCapturable          int64                      `json:"amount_capturable"           yaml:"amount_capturable"`
	AmountReceived            int64                      `json:"amount_received"             yaml:"amount_received"`
	Application               *Expandable[Application]   `json:"application"                 yaml:"application"`
	ApplicationFeeAmount      *int64                     `json:"application_fee_amount"      yaml:"application_fee_amount"`
	AutomaticPaymentMethods   *AutomaticPaymentMethods   `json:"automatic_payment_methods"   yaml:"automatic_payment_methods"`
	CanceledAt                *int64                     `json:"canceled_at"                 yaml:"canceled_at"`
	CancellationReason        *CancellationReason        `json:"cancellation_reason"         yaml:"cancellation_reason"`
	CaptureMethod             CaptureMethod              `json:"capture_method"              yaml:"capture_method"`
	ClientSecret              string                     `json:"client_secret"               yaml:"client_secret"`
	ConfirmationMethod        ConfirmationMethod         `json:"confirmation_method"         yaml:"confirmation_method"`
	Created                   int64                      `json:"created"                     yaml:"created"`
	Currency                  string                     `json:"currency"                    yaml:"currency"`
	Customer                  *Expandable[Customer]      `json:"customer"                    yaml:"customer"`
	Description               *string                    `json:"description"                 yaml:"description"`
	Invoice                   *Expandable[Invoice]       `json:"invoice"                     yaml:"invoice"`
	LastPaymentError          *Error                     `json:"last_payment_error"          yaml:"last_payment_error"`
	LatestCharge              *Expandable[Charge]        `json:"latest_charge"               yaml:"latest_charge"`
	Livemode                  bool                       `json:"livemode"                    yaml:"livemode"`
	Metadata                  map[string]string          `json:"metadata"                    yaml:"metadata"`
	NextAction                *NextAction                `json:"next_action"                 yaml:"next_action"`
	OnBehalfOf                *Expandable[Account]       `json:"on_behalf_of"                yaml:"on_behalf_of"`
	PaymentMethod             *Expandable[PaymentMethod] `json:"payment_method"              yaml:"payment_method"`
	PaymentMethodTypes        []string                   `json:"payment_method_types"        yaml:"payment_method_types"`
	ReceiptEmail              *string                    `json:"receipt_email"               yaml:"receipt_email"`
	Review                    *Expandable[Review]        `json:"review"                      yaml:"review"`
	SetupFutureUsage          *SetupFutureUsage          `json:"setup_future_usage"          yaml:"setup_future_usage"`
	Shipping                  *ShippingDetails           `json:"shipping"                    yaml:"shipping"`
	StatementDescriptor       *string                    `json:"statement_descriptor"        yaml:"statement_descriptor"`
	StatementDescriptorSuffix *string                    `json:"statement_descriptor_suffix" yaml:"statement_descriptor_suffix"`
	Status                    PaymentIntentStatus        `json:"status"                      yaml:"status"`
	TransferData              *TransferData              `json:"transfer_data"               yaml:"transfer_data"`
	TransferGroup             *string                    `json:"transfer_group"              yaml:"transfer_group"`
}

// GetID implements Identifiable. It is nil-safe so a nil record is treated
// as a missing identifier rather than a panic.
func (pi *PaymentIntent) GetID() string {
	if pi == nil {
		return ""
	}

	return pi.ID
}

// CreatedAt returns Created as a time.
func (pi *PaymentIntent) CreatedAt() time.Time {
	return UnixTime(pi.Created)
}

// PaymentIntentList is a page of payment intents.
type PaymentIntentList = ListResponse[*PaymentIntent]

// PaymentIntentCreateParams are the parameters of PaymentIntentsClient.Create.
type PaymentIntentCreateParams struct {
	Params

	Amount                    *int64                         `form:"amount"`
	Currency                  *string                        `form:"currency"`
	ApplicationFeeAmount      *int64                         `form:"application_fee_amount"`
	AutomaticPaymentMethods   *AutomaticPaymentMethodsParams `form:"automatic_payment_methods"`
	CaptureMethod             *string                        `form:"capture_method"`
	Confirm                   *bool                          `form:"confirm"`
	ConfirmationMethod        *string                        `form:"confirmation_method"`
	Customer                  *string                        `form:"customer"`
	Description               *string                        `form:"description"`
	ErrorOnRequiresAction     *bool                          `form:"error_on_requires_action"`
	Metadata                  map[string]string              `form:"metadata"`
	OffSession                *bool                          `form:"off_session"`
	OnBehalfOf                *string                        `form:"on_behalf_of"`
	PaymentMethod             *string                        `form:"payment_method"`
	PaymentMethodTypes        []string                       `form:"payment_method_types"`
	ReceiptEmail              *string                        `form:"receipt_email"`
	ReturnURL                 *string                        `form:"return_url"`
	SetupFutureUsage          *string                        `form:"setup_future_usage"`
	Shipping                  *ShippingDetailsParams         `form:"shipping"`
	StatementDescriptor       *string                        `form:"statement_descriptor"`
	StatementDescriptorSuffix *string                        `form:"statement_descriptor_suffix"`
	TransferData              *TransferDataParams            `form:"transfer_data"`
	TransferGroup             *string                        `form:"transfer_group"`
}

// PaymentIntentRetrieveParams are the parameters of PaymentIntentsClient.Get.
type PaymentIntentRetrieveParams struct {
	Params

	// ClientSecret is required when retrieving with a publishable key.
	ClientSecret *string `form:"client_secret"`
}

// PaymentIntentUpdateParams are the parameters of PaymentIntentsClient.Update.
// Nil fields are left unchanged; a pointer to "" clears a field.
type PaymentIntentUpdateParams struct {
	Params

	Amount                    *int64                 `form:"amount"`
	ApplicationFeeAmount      *int64                 `form:"application_fee_amount"`
	CaptureMethod             *string                `form:"capture_method"`
	Currency                  *string                `form:"currency"`
	Customer                  *string                `form:"customer"`
	Description               *string                `form:"description"`
	Metadata                  map[string]string      `form:"metadata"`
	PaymentMethod             *string                `form:"payment_method"`
	PaymentMethodTypes        []string               `form:"payment_method_types"`
	ReceiptEmail              *string                `form:"receipt_email"`
	SetupFutureUsage          *string                `form:"setup_future_usage"`
	Shipping                  *ShippingDetailsParams `form:"shipping"`
	StatementDescriptor       *string                `form:"statement_descriptor"`
	StatementDescriptorSuffix *string                `form:"statement_descriptor_suffix"`
	TransferGroup             *string                `form:"transfer_group"`
}

// PaymentIntentListParams are the parameters of PaymentIntentsClient.List.
type PaymentIntentListParams struct {
	ListParams

	Created  *RangeQueryParams `form:"created"`
	Customer *string           `form:"customer"`
}

// PaymentIntentConfirmParams are the parameters of PaymentIntentsClient.Confirm.
type PaymentIntentConfirmParams struct {
	Params

	CaptureMethod         *string                `form:"capture_method"`
	ErrorOnRequiresAction *bool                  `form:"error_on_requires_action"`
	Mandate               *string                `form:"mandate"`
	OffSession            *bool                  `form:"off_session"`
	PaymentMethod         *string                `form:"payment_method"`
	PaymentMethodTypes    []string               `form:"payment_method_types"`
	ReceiptEmail          *string                `form:"receipt_email"`
	ReturnURL             *string                `form:"return_url"`
	SetupFutureUsage      *string                `form:"setup_future_usage"`
	Shipping              *ShippingDetailsParams `form:"shipping"`
	UseStripeSDK          *bool                  `form:"use_stripe_sdk"`
}

// PaymentIntentCaptureParams are the parameters of PaymentIntentsClient.Capture.
type PaymentIntentCaptureParams struct {
	Params

	// AmountToCapture defaults to the full amount_capturable.
	AmountToCapture           *int64              `form:"amount_to_capture"`
	ApplicationFeeAmount      *int64              `form:"application_fee_amount"`
	FinalCapture              *bool               `form:"final_capture"`
	Metadata                  map[string]string   `form:"metadata"`
	StatementDescriptor       *string             `form:"statement_descriptor"`
	StatementDescriptorSuffix *string             `form:"statement_descriptor_suffix"`
	TransferData              *TransferDataParams `form:"transfer_data"`
}

// PaymentIntentCancelParams are the parameters of PaymentIntentsClient.Cancel.
type PaymentIntentCancelParams struct {
	Params

	CancellationReason *string `form:"cancellation_reason"`
}

// PaymentIntentsClient defines operations for payment intents.
//
// Operations that target an existing payment intent accept any Identifiable:
// a bare ID or a previously fetched *PaymentIntent. A missing ID fails with
// KindInvalidIdentifier before any request is sent. Params may be nil.
type PaymentIntentsClient interface {
	Create(ctx context.Context, params *PaymentIntentCreateParams) (*PaymentIntent, error)
	Get(ctx context.Context, ref Identifiable, params *PaymentIntentRetrieveParams) (*PaymentIntent, error)
	Update(ctx context.Context, ref Identifiable, params *PaymentIntentUpdateParams) (*PaymentIntent, error)
	List(ctx context.Context, params *PaymentIntentListParams) (*PaymentIntentList, error)
	ListAll(ctx context.Context, params *PaymentIntentListParams) *ListIterator[*PaymentIntent]
	Confirm(ctx context.Context, ref Identifiable, params *PaymentIntentConfirmParams) (*PaymentIntent, error)
	Capture(ctx context.Context, ref Identifiable, params *PaymentIntentCaptureParams) (*PaymentIntent, error)
	Cancel(ctx context.Context, ref Identifiable, params *PaymentIntentCancelParams) (*PaymentIntent, error)
}
