package payments

// Customer is the customer a payment intent belongs to.
type Customer struct {
	ID          string            `json:"id"          yaml:"id"`
	Object      string            `json:"object"      yaml:"object"`
	Created     int64             `json:"created"     yaml:"created"`
	Description *string           `json:"description" yaml:"description"`
	Email       *string           `json:"email"       yaml:"email"`
	Name        *string           `json:"name"        yaml:"name"`
	Livemode    bool              `json:"livemode"    yaml:"livemode"`
	Metadata    map[string]string `json:"metadata"    yaml:"metadata"`
}

// GetID implements Identifiable.
func (c *Customer) GetID() string {
	if c == nil {
		return ""
	}

	return c.ID
}

// PaymentMethodCard holds the card details of a card payment method.
type PaymentMethodCard struct {
	Brand    string `json:"brand"     yaml:"brand"`
	Country  string `json:"country"   yaml:"country"`
	ExpMonth int64  `json:"exp_month" yaml:"exp_month"`
	ExpYear  int64  `json:"exp_year"  yaml:"exp_year"`
	Funding  string `json:"funding"   yaml:"funding"`
	Last4    string `json:"last4"     yaml:"last4"`
}

// BillingDetails are the billing contact details of a payment method.
type BillingDetails struct {
	Address *Address `json:"address" yaml:"address"`
	Email   *string  `json:"email"   yaml:"email"`
	Name    *string  `json:"name"    yaml:"name"`
	Phone   *string  `json:"phone"   yaml:"phone"`
}

// PaymentMethod is the instrument used to pay a payment intent.
type PaymentMethod struct {
	ID             string                `json:"id"              yaml:"id"`
	Object         string                `json:"object"          yaml:"object"`
	Type           string                `json:"type"            yaml:"type"`
	BillingDetails *BillingDetails       `json:"billing_details" yaml:"billing_details"`
	Card           *PaymentMethodCard    `json:"card,omitempty"  yaml:"card,omitempty"`
	Created        int64                 `json:"created"         yaml:"created"`
	Customer       *Expandable[Customer] `json:"customer"        yaml:"customer"`
	Livemode       bool                  `json:"livemode"        yaml:"livemode"`
	Metadata       map[string]string     `json:"metadata"        yaml:"metadata"`
}

// GetID implements Identifiable.
func (p *PaymentMethod) GetID() string {
	if p == nil {
		return ""
	}

	return p.ID
}

// Charge is a single attempt to move money, created while confirming.
type Charge struct {
	ID             string            `json:"id"              yaml:"id"`
	Object         string            `json:"object"          yaml:"object"`
	Amount         int64             `json:"amount"          yaml:"amount"`
	AmountCaptured int64             `json:"amount_captured" yaml:"amount_captured"`
	AmountRefunded int64             `json:"amount_refunded" yaml:"amount_refunded"`
	Captured       bool              `json:"captured"        yaml:"captured"`
	Created        int64             `json:"created"         yaml:"created"`
	Currency       string            `json:"currency"        yaml:"currency"`
	FailureCode    *string           `json:"failure_code"    yaml:"failure_code"`
	FailureMessage *string           `json:"failure_message" yaml:"failure_message"`
	Livemode       bool              `json:"livemode"        yaml:"livemode"`
	Metadata       map[string]string `json:"metadata"        yaml:"metadata"`
	Paid           bool              `json:"paid"            yaml:"paid"`
	PaymentIntent  *string           `json:"payment_intent"  yaml:"payment_intent"`
	Status         string            `json:"status"          yaml:"status"`
}

// GetID implements Identifiable.
func (c *Charge) GetID() string {
	if c == nil {
		return ""
	}

	return c.ID
}

// Account is a connected account.
type Account struct {
	ID           string  `json:"id"            yaml:"id"`
	Object       string  `json:"object"        yaml:"object"`
	BusinessType *string `json:"business_type" yaml:"business_type"`
	Country      string  `json:"country"       yaml:"country"`
	Email        *string `json:"email"         yaml:"email"`
	Type         string  `json:"type"          yaml:"type"`
}

// GetID implements Identifiable.
func (a *Account) GetID() string {
	if a == nil {
		return ""
	}

	return a.ID
}

// Application is the platform application that created the payment intent.
type Application struct {
	ID     string  `json:"id"     yaml:"id"`
	Object string  `json:"object" yaml:"object"`
	Name   *string `json:"name"   yaml:"name"`
}

// Invoice is the invoice that created the payment intent, if any.
type Invoice struct {
	ID     string  `json:"id"     yaml:"id"`
	Object string  `json:"object" yaml:"object"`
	Number *string `json:"number" yaml:"number"`
	Status string  `json:"status" yaml:"status"`
}

// Review is a fraud review opened for the payment intent.
type Review struct {
	ID     string `json:"id"     yaml:"id"`
	Object string `json:"object" yaml:"object"`
	Open   bool   `json:"open"   yaml:"open"`
	Reason string `json:"reason" yaml:"reason"`
}

// Address is a postal address.
type Address struct {
	City       *string `json:"city"        yaml:"city"`
	Country    *string `json:"country"     yaml:"country"`
	Line1      *string `json:"line1"       yaml:"line1"`
	Line2      *string `json:"line2"       yaml:"line2"`
	PostalCode *string `json:"postal_code" yaml:"postal_code"`
	State      *string `json:"state"       yaml:"state"`
}

// ShippingDetails are the shipping details of a payment intent.
type ShippingDetails struct {
	Address        *Address `json:"address"         yaml:"address"`
	Carrier        *string  `json:"carrier"         yaml:"carrier"`
	Name           string   `json:"name"            yaml:"name"`
	Phone          *string  `json:"phone"           yaml:"phone"`
	TrackingNumber *string  `json:"tracking_number" yaml:"tracking_number"`
}

// TransferData describes funds sent to a connected account on success.
type TransferData struct {
	Amount      *int64               `json:"amount"      yaml:"amount"`
	Destination *Expandable[Account] `json:"destination" yaml:"destination"`
}

// AutomaticPaymentMethods reports whether payment methods are chosen by the
// dashboard settings.
type AutomaticPaymentMethods struct {
	AllowRedirects *string `json:"allow_redirects,omitempty" yaml:"allow_redirects,omitempty"`
	Enabled        bool    `json:"enabled"                   yaml:"enabled"`
}

// NextAction tells the integration what the customer must do next.
type NextAction struct {
	Type          string                 `json:"type"                      yaml:"type"`
	RedirectToURL *NextActionRedirect    `json:"redirect_to_url,omitempty" yaml:"redirect_to_url,omitempty"`
	UseStripeSDK  map[string]interface{} `json:"use_stripe_sdk,omitempty"  yaml:"use_stripe_sdk,omitempty"`
}

// NextActionRedirect is the redirect_to_url next action.
type NextActionRedirect struct {
	ReturnURL string `json:"return_url" yaml:"return_url"`
	URL       string `json:"url"        yaml:"url"`
}

// AddressParams sets a postal address.
type AddressParams struct {
	City       *string `form:"city"`
	Country    *string `form:"country"`
	Line1      *string `form:"line1"`
	Line2      *string `form:"line2"`
	PostalCode *string `form:"postal_code"`
	State      *string `form:"state"`
}

// ShippingDetailsParams sets shipping details.
type ShippingDetailsParams struct {
	Address        *AddressParams `form:"address"`
	Carrier        *string        `form:"carrier"`
	Name           *string        `form:"name"`
	Phone          *string        `form:"phone"`
	TrackingNumber *string        `form:"tracking_number"`
}

// TransferDataParams routes funds to a connected account.
type TransferDataParams struct {
	Amount      *int64  `form:"amount"`
	Destination *string `form:"destination"`
}

// AutomaticPaymentMethodsParams enables dashboard-managed payment methods.
type AutomaticPaymentMethodsParams struct {
	AllowRedirects *string `form:"allow_redirects"`
	Enabled        *bool   `form:"enabled"`
}
