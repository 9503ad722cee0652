package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/payments-client/internal/constants"
	"github.com/fivetwenty-io/payments-client/internal/form"
	"github.com/fivetwenty-io/payments-client/internal/http"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// PaymentIntentsClient implements payments.PaymentIntentsClient.
type PaymentIntentsClient struct {
	httpClient *http.Client
}

// NewPaymentIntentsClient creates a new payment intents client.
func NewPaymentIntentsClient(httpClient *http.Client) *PaymentIntentsClient {
	return &PaymentIntentsClient{
		httpClient: httpClient,
	}
}

// PaymentIntentPath returns the path of one payment intent, or of one of its
// actions when action is not empty.
func PaymentIntentPath(id, action string) string {
	path := constants.APIPathPaymentIntents + "/" + url.PathEscape(id)
	if action != "" {
		path += "/" + action
	}

	return path
}

// Create implements payments.PaymentIntentsClient.Create.
func (c *PaymentIntentsClient) Create(ctx context.Context, params *payments.PaymentIntentCreateParams) (*payments.PaymentIntent, error) {
	var opts *payments.RequestOptions
	if params != nil {
		opts = params.Options
	}

	intent, err := c.call(ctx, nethttp.MethodPost, constants.APIPathPaymentIntents, params, opts)
	if err != nil {
		return nil, fmt.Errorf("creating payment intent: %w", err)
	}

	return intent, nil
}

// Get implements payments.PaymentIntentsClient.Get.
func (c *PaymentIntentsClient) Get(ctx context.Context, ref payments.Identifiable, params *payments.PaymentIntentRetrieveParams) (*payments.PaymentIntent, error) {
	id, err := resolveID(ref, "retrieve")
	if err != nil {
		return nil, fmt.Errorf("getting payment intent: %w", err)
	}

	var opts *payments.RequestOptions
	if params != nil {
		opts = params.Options
	}

	intent, err := c.call(ctx, nethttp.MethodGet, PaymentIntentPath(id, ""), params, opts)
	if err != nil {
		return nil, fmt.Errorf("getting payment intent: %w", err)
	}

	return intent, nil
}

// Update implements payments.PaymentIntentsClient.Update.
func (c *PaymentIntentsClient) Update(ctx context.Context, ref payments.Identifiable, params *payments.PaymentIntentUpdateParams) (*payments.PaymentIntent, error) {
	id, err := resolveID(ref, "update")
	if err != nil {
		return nil, fmt.Errorf("updating payment intent: %w", err)
	}

	var opts *payments.RequestOptions
	if params != nil {
		opts = params.Options
	}

	intent, err := c.call(ctx, nethttp.MethodPost, PaymentIntentPath(id, ""), params, opts)
	if err != nil {
		return nil, fmt.Errorf("updating payment intent: %w", err)
	}

	return intent, nil
}

// List implements payments.PaymentIntentsClient.List.
func (c *PaymentIntentsClient) List(ctx context.Context, params *payments.PaymentIntentListParams) (*payments.PaymentIntentList, error) {
	var opts *payments.RequestOptions
	if params != nil {
		opts = params.Options
	}

	req := http.NewRequest(opts).
		WithEndpoint(constants.APIPathPaymentIntents).
		WithParams(form.Encode(params))

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("listing payment intents: %w", err)
	}

	var list payments.PaymentIntentList

	err = http.DecodeJSON(resp, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing payment intents list: %w", err)
	}

	return &list, nil
}

// ListAll implements payments.PaymentIntentsClient.ListAll. params is copied;
// only the starting_after cursor changes between pages.
func (c *PaymentIntentsClient) ListAll(ctx context.Context, params *payments.PaymentIntentListParams) *payments.ListIterator[*payments.PaymentIntent] {
	var base payments.PaymentIntentListParams
	if params != nil {
		base = *params
	}

	return payments.NewListIterator[*payments.PaymentIntent](ctx,
		func(ctx context.Context, startingAfter string) (*payments.PaymentIntentList, error) {
			page := base
			if startingAfter != "" {
				page.StartingAfter = payments.String(startingAfter)
			}

			return c.List(ctx, &page)
		})
}

// Confirm implements payments.PaymentIntentsClient.Confirm.
func (c *PaymentIntentsClient) Confirm(ctx context.Context, ref payments.Identifiable, params *payments.PaymentIntentConfirmParams) (*payments.PaymentIntent, error) {
	var opts *payments.RequestOptions
	if params != nil {
		opts = params.Options
	}

	intent, err := c.action(ctx, ref, constants.ActionConfirm, params, opts)
	if err != nil {
		return nil, fmt.Errorf("confirming payment intent: %w", err)
	}

	return intent, nil
}

// Capture implements payments.PaymentIntentsClient.Capture.
func (c *PaymentIntentsClient) Capture(ctx context.Context, ref payments.Identifiable, params *payments.PaymentIntentCaptureParams) (*payments.PaymentIntent, error) {
	var opts *payments.RequestOptions
	if params != nil {
		opts = params.Options
	}

	intent, err := c.action(ctx, ref, constants.ActionCapture, params, opts)
	if err != nil {
		return nil, fmt.Errorf("capturing payment intent: %w", err)
	}

	return intent, nil
}

// Cancel implements payments.PaymentIntentsClient.Cancel.
func (c *PaymentIntentsClient) Cancel(ctx context.Context, ref payments.Identifiable, params *payments.PaymentIntentCancelParams) (*payments.PaymentIntent, error) {
	var opts *payments.RequestOptions
	if params != nil {
		opts = params.Options
	}

	intent, err := c.action(ctx, ref, constants.ActionCancel, params, opts)
	if err != nil {
		return nil, fmt.Errorf("canceling payment intent: %w", err)
	}

	return intent, nil
}

func (c *PaymentIntentsClient) action(ctx context.Context, ref payments.Identifiable, action string, params interface{}, opts *payments.RequestOptions) (*payments.PaymentIntent, error) {
	id, err := resolveID(ref, action)
	if err != nil {
		return nil, err
	}

	return c.call(ctx, nethttp.MethodPost, PaymentIntentPath(id, action), params, opts)
}

func (c *PaymentIntentsClient) call(ctx context.Context, method, path string, params interface{}, opts *payments.RequestOptions) (*payments.PaymentIntent, error) {
	req := http.NewRequest(opts).
		WithMethod(method).
		WithEndpoint(path).
		WithParams(form.Encode(params))

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var intent payments.PaymentIntent

	err = http.DecodeJSON(resp, &intent)
	if err != nil {
		return nil, err
	}

	return &intent, nil
}

// resolveID extracts the target ID. A nil reference, a nil record or a blank
// ID is rejected before anything is sent.
func resolveID(ref payments.Identifiable, operation string) (string, error) {
	if ref == nil {
		return "", payments.NewInvalidIdentifierError(operation)
	}

	id := ref.GetID()
	if strings.TrimSpace(id) == "" {
		return "", payments.NewInvalidIdentifierError(operation)
	}

	return id, nil
}
