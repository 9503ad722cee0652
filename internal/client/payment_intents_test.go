package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

const intentFixture = `{
  "id": "pi_3MtwBwLkdIwHu7ix28a3tqPa",
  "object": "payment_intent",
  "amount": 2000,
  "amount_capturable": 0,
  "amount_received": 0,
  "capture_method": "automatic",
  "client_secret": "pi_3MtwBwLkdIwHu7ix28a3tqPa_secret_YrKJUKribcBjcG8HVhfZluoGH",
  "confirmation_method": "automatic",
  "created": 1680800504,
  "currency": "usd",
  "customer": {"id": "cus_NffrFeUfNV2Hib", "object": "customer", "email": "jenny@example.com"},
  "latest_charge": "ch_3MtwBwLkdIwHu7ix0snN0B15",
  "livemode": false,
  "metadata": {"order_id": "6735"},
  "payment_method_types": ["card"],
  "shipping": {"name": "Jenny Rosen", "address": {"city": "Berlin", "country": "DE"}},
  "status": "requires_confirmation"
}`

func fakeIntentID() string {
	return "pi_" + gofakeit.LetterN(24)
}

func TestPaymentIntentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       string
		action   string
		expected string
	}{
		{"record", "pi_123", "", "/v1/payment_intents/pi_123"},
		{"confirm", "pi_123", "confirm", "/v1/payment_intents/pi_123/confirm"},
		{"capture", "pi_123", "capture", "/v1/payment_intents/pi_123/capture"},
		{"cancel", "pi_123", "cancel", "/v1/payment_intents/pi_123/cancel"},
		{"reserved characters are escaped", "pi/../x y", "", "/v1/payment_intents/pi%2F..%2Fx%20y"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, PaymentIntentPath(tt.id, tt.action))
		})
	}
}

func TestPaymentIntentsClient_Get(t *testing.T) {
	t.Parallel()

	for i := 0; i < 10; i++ {
		id := fakeIntentID()

		server := newTestServer(t, http.StatusOK, fmt.Sprintf(`{"id":%q,"object":"payment_intent"}`, id))
		client := NewTestClient(server.URL)

		intent, err := client.Get(context.Background(), payments.ID(id), nil)
		require.NoError(t, err)
		assert.Equal(t, id, intent.ID)

		requests := server.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodGet, requests[0].Method)
		assert.Equal(t, "/v1/payment_intents/"+id, requests[0].Path)
		assert.Empty(t, requests[0].RawQuery)
		assert.Equal(t, "Bearer "+testAPIKey, requests[0].Header.Get("Authorization"))
	}
}

func TestPaymentIntentsClient_GetWithParams(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, intentFixture)
	client := NewTestClient(server.URL)

	params := &payments.PaymentIntentRetrieveParams{
		ClientSecret: payments.String("pi_3MtwBwLkdIwHu7ix28a3tqPa_secret_YrKJUKribcBjcG8HVhfZluoGH"),
	}
	params.AddExpand("customer")

	intent, err := client.Get(context.Background(), payments.ID("pi_3MtwBwLkdIwHu7ix28a3tqPa"), params)
	require.NoError(t, err)
	assert.True(t, intent.Customer.IsExpanded())

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t,
		"expand[0]=customer&client_secret=pi_3MtwBwLkdIwHu7ix28a3tqPa_secret_YrKJUKribcBjcG8HVhfZluoGH",
		requests[0].RawQuery)
}

func TestPaymentIntentsClient_DecodeRoundTrip(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, intentFixture)
	client := NewTestClient(server.URL)

	intent, err := client.Get(context.Background(), payments.ID("pi_3MtwBwLkdIwHu7ix28a3tqPa"), nil)
	require.NoError(t, err)
	assert.Equal(t, payments.PaymentIntentStatusRequiresConfirmation, intent.Status)
	assert.Equal(t, "Berlin", *intent.Shipping.Address.City)

	encoded, err := json.Marshal(intent)
	require.NoError(t, err)

	var again payments.PaymentIntent

	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.Equal(t, *intent, again)
}

func TestPaymentIntentsClient_Create(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, intentFixture)
	client := NewTestClient(server.URL)

	email := gofakeit.Email()

	params := &payments.PaymentIntentCreateParams{
		Amount:             payments.Int64(2000),
		Currency:           payments.String("usd"),
		PaymentMethodTypes: []string{"card"},
		ReceiptEmail:       payments.String(email),
		Metadata:           map[string]string{"order_id": "6735"},
	}
	params.Options = &payments.RequestOptions{IdempotencyKey: "order-6735", Account: "acct_1032D82eZvKYlo2C"}

	intent, err := client.Create(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "pi_3MtwBwLkdIwHu7ix28a3tqPa", intent.ID)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "/v1/payment_intents", requests[0].Path)
	assert.Equal(t, "order-6735", requests[0].Header.Get("Idempotency-Key"))
	assert.Equal(t, "acct_1032D82eZvKYlo2C", requests[0].Header.Get("Stripe-Account"))

	values, err := url.ParseQuery(requests[0].Body)
	require.NoError(t, err)
	assert.Equal(t, "2000", values.Get("amount"))
	assert.Equal(t, "usd", values.Get("currency"))
	assert.Equal(t, "card", values.Get("payment_method_types[0]"))
	assert.Equal(t, email, values.Get("receipt_email"))
	assert.Equal(t, "6735", values.Get("metadata[order_id]"))
}

func TestPaymentIntentsClient_UpdateTargetsSamePath(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, intentFixture)
	client := NewTestClient(server.URL)

	record := &payments.PaymentIntent{ID: fakeIntentID(), Amount: 1000}
	originalID := record.ID
	params := &payments.PaymentIntentUpdateParams{Description: payments.String("rush order")}

	updated, err := client.Update(context.Background(), record, params)
	require.NoError(t, err)

	_, err = client.Update(context.Background(), payments.ID(record.ID), params)
	require.NoError(t, err)

	requests := server.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, requests[0].Path, requests[1].Path)
	assert.Equal(t, "/v1/payment_intents/"+record.ID, requests[0].Path)
	assert.Equal(t, "description=rush+order", requests[0].Body)

	assert.NotSame(t, record, updated)
	assert.Equal(t, originalID, record.ID)
	assert.Equal(t, int64(1000), record.Amount)
	assert.Equal(t, int64(2000), updated.Amount)
}

func TestPaymentIntentsClient_List(t *testing.T) {
	t.Parallel()

	t.Run("nil params send an empty query", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusOK, `{"object":"list","url":"/v1/payment_intents","has_more":false,"data":[]}`)
		client := NewTestClient(server.URL)

		list, err := client.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, list.Data)

		requests := server.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodGet, requests[0].Method)
		assert.Equal(t, "/v1/payment_intents", requests[0].Path)
		assert.Empty(t, requests[0].RawQuery)
	})

	t.Run("filters and cursors", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusOK, `{"object":"list","has_more":true,"data":[{"id":"pi_1"},{"id":"pi_2"}]}`)
		client := NewTestClient(server.URL)

		params := &payments.PaymentIntentListParams{
			Customer: payments.String("cus_NffrFeUfNV2Hib"),
			Created:  &payments.RangeQueryParams{GreaterThanOrEqual: 1680000000},
		}
		params.Limit = payments.Int64(2)

		list, err := client.List(context.Background(), params)
		require.NoError(t, err)
		assert.True(t, list.HasMore)
		assert.Equal(t, "pi_2", list.LastID())

		requests := server.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "limit=2&created[gte]=1680000000&customer=cus_NffrFeUfNV2Hib", requests[0].RawQuery)
	})
}

func TestPaymentIntentsClient_ListAll(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"":     `{"object":"list","has_more":true,"data":[{"id":"pi_1"},{"id":"pi_2"}]}`,
		"pi_2": `{"object":"list","has_more":true,"data":[{"id":"pi_3"}]}`,
		"pi_3": `{"object":"list","has_more":false,"data":[{"id":"pi_4"}]}`,
	}

	server := newTestServerFunc(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "2", request.URL.Query().Get("limit"))

		page, ok := pages[request.URL.Query().Get("starting_after")]
		if !ok {
			writer.WriteHeader(http.StatusBadRequest)

			return
		}

		_, _ = writer.Write([]byte(page))
	})
	client := NewTestClient(server.URL)

	params := &payments.PaymentIntentListParams{}
	params.Limit = payments.Int64(2)

	intents, err := client.ListAll(context.Background(), params).All()
	require.NoError(t, err)

	ids := make([]string, 0, len(intents))
	for _, intent := range intents {
		ids = append(ids, intent.ID)
	}

	assert.Equal(t, []string{"pi_1", "pi_2", "pi_3", "pi_4"}, ids)
	assert.Len(t, server.Requests(), 3)
	assert.Nil(t, params.StartingAfter, "caller params are not modified")
}

func TestPaymentIntentsClient_Actions(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, intentFixture)
	client := NewTestClient(server.URL)
	ctx := context.Background()
	id := payments.ID("pi_3MtwBwLkdIwHu7ix28a3tqPa")

	_, err := client.Confirm(ctx, id, &payments.PaymentIntentConfirmParams{PaymentMethod: payments.String("pm_card_visa")})
	require.NoError(t, err)

	_, err = client.Capture(ctx, id, &payments.PaymentIntentCaptureParams{AmountToCapture: payments.Int64(1500)})
	require.NoError(t, err)

	_, err = client.Cancel(ctx, id, &payments.PaymentIntentCancelParams{
		CancellationReason: payments.String(string(payments.CancellationReasonRequestedByCustomer)),
	})
	require.NoError(t, err)

	_, err = client.Cancel(ctx, id, nil)
	require.NoError(t, err)

	requests := server.Requests()
	require.Len(t, requests, 4)

	expected := []struct{ path, body string }{
		{"/v1/payment_intents/pi_3MtwBwLkdIwHu7ix28a3tqPa/confirm", "payment_method=pm_card_visa"},
		{"/v1/payment_intents/pi_3MtwBwLkdIwHu7ix28a3tqPa/capture", "amount_to_capture=1500"},
		{"/v1/payment_intents/pi_3MtwBwLkdIwHu7ix28a3tqPa/cancel", "cancellation_reason=requested_by_customer"},
		{"/v1/payment_intents/pi_3MtwBwLkdIwHu7ix28a3tqPa/cancel", ""},
	}

	for i, want := range expected {
		assert.Equal(t, http.MethodPost, requests[i].Method)
		assert.Equal(t, want.path, requests[i].Path)
		assert.Equal(t, want.body, requests[i].Body)
	}
}

func TestPaymentIntentsClient_InvalidIdentifier(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, intentFixture)
	client := NewTestClient(server.URL)
	ctx := context.Background()

	var nilRecord *payments.PaymentIntent

	refs := map[string]payments.Identifiable{
		"nil reference": nil,
		"nil record":    nilRecord,
		"empty id":      payments.ID(""),
		"blank id":      payments.ID("   "),
		"empty record":  &payments.PaymentIntent{},
	}

	calls := map[string]func(payments.Identifiable) error{
		"get": func(ref payments.Identifiable) error {
			_, err := client.Get(ctx, ref, nil)

			return err
		},
		"update": func(ref payments.Identifiable) error {
			_, err := client.Update(ctx, ref, nil)

			return err
		},
		"confirm": func(ref payments.Identifiable) error {
			_, err := client.Confirm(ctx, ref, nil)

			return err
		},
		"capture": func(ref payments.Identifiable) error {
			_, err := client.Capture(ctx, ref, nil)

			return err
		},
		"cancel": func(ref payments.Identifiable) error {
			_, err := client.Cancel(ctx, ref, nil)

			return err
		},
	}

	for callName, call := range calls {
		for refName, ref := range refs {
			err := call(ref)
			require.Error(t, err, "%s with %s", callName, refName)
			assert.True(t, payments.IsInvalidIdentifier(err), "%s with %s", callName, refName)
			require.ErrorIs(t, err, payments.ErrInvalidIdentifier)
		}
	}

	assert.Empty(t, server.Requests())
}

func TestPaymentIntentsClient_Errors(t *testing.T) {
	t.Parallel()

	t.Run("declined card", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusPaymentRequired, `{"error":{
		  "type": "card_error",
		  "code": "card_declined",
		  "decline_code": "generic_decline",
		  "message": "Your card was declined.",
		  "param": "payment_method",
		  "doc_url": "https://stripe.com/docs/error-codes/card-declined"
		}}`)
		client := NewTestClient(server.URL)

		intent, err := client.Confirm(context.Background(), payments.ID("pi_1"), nil)
		require.Error(t, err)
		assert.Nil(t, intent)
		assert.Contains(t, err.Error(), "confirming payment intent")

		var apiErr *payments.Error

		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, payments.KindClientError, apiErr.Kind)
		assert.Equal(t, http.StatusPaymentRequired, apiErr.HTTPStatusCode)
		assert.Equal(t, "generic_decline", apiErr.DeclineCode)
		assert.Equal(t, "payment_method", apiErr.Param)
		assert.Equal(t, "req_test", apiErr.RequestID)
		assert.True(t, payments.IsCardError(err))
	})

	t.Run("missing intent", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusNotFound, `{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such payment_intent: 'pi_missing'"}}`)
		client := NewTestClient(server.URL)

		_, err := client.Get(context.Background(), payments.ID("pi_missing"), nil)
		assert.True(t, payments.IsClientError(err))
		assert.True(t, payments.IsNotFound(err))
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusInternalServerError, `{"error":{"type":"api_error","message":"Something went wrong."}}`)
		client := NewTestClient(server.URL)

		_, err := client.List(context.Background(), nil)
		assert.True(t, payments.IsServiceError(err))
		assert.Len(t, server.Requests(), 1)
	})

	t.Run("connectivity", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusOK, intentFixture)
		closedURL := server.URL
		server.Close()

		_, err := NewTestClient(closedURL).Create(context.Background(), nil)
		assert.True(t, payments.IsConnectivityError(err))
	})
}
