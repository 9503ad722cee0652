// Package payments provides types, interfaces, and helpers for working with
// the payment intents resource of the payments HTTP API.
//
// # Overview
//
// The payments package defines the domain types (PaymentIntent and the
// records it references), the parameter types of every operation, and the
// PaymentIntentsClient interface. A concrete implementation is provided by
// the payclient package, which wires configuration, transport and
// authentication. Most consumers import payclient to construct a client and
// then call the resource clients exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/payments-client/pkg/payclient"
//	  "github.com/fivetwenty-io/payments-client/pkg/payments"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := payclient.New(ctx, &payments.Config{APIKey: "sk_test_..."})
//	  if err != nil { log.Fatal(err) }
//
//	  intent, err := cli.PaymentIntents().Create(ctx, &payments.PaymentIntentCreateParams{
//	    Amount:   payments.Int64(2000),
//	    Currency: payments.String("usd"),
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // A fetched record can be passed wherever an ID is expected.
//	  intent, err = cli.PaymentIntents().Capture(ctx, intent, nil)
//	}
//
// # Identifiers
//
// Operations on an existing payment intent take an Identifiable: either
// payments.ID("pi_...") or a *PaymentIntent. Both resolve to the same path.
// An empty ID fails with KindInvalidIdentifier and no request is sent.
//
// # Per-call options
//
// Every params struct embeds Params, whose Options field carries the
// idempotency key, connected account, API version, API key override and
// extra headers for a single call.
//
// # Pagination
//
// List returns one page. ListAll returns a ListIterator that follows the
// starting_after cursor:
//
//	it := cli.PaymentIntents().ListAll(ctx, nil)
//	for it.HasNext() {
//	  pi, err := it.Next()
//	  if err != nil { break }
//	  _ = pi
//	}
//
// # Errors
//
// Every failure is an *Error with a Kind: KindInvalidIdentifier,
// KindClientError (4xx), KindServiceError (5xx) or KindConnectivityError.
// IsClientError, IsCardError and friends branch on them, and errors.Is works
// with ErrClientError and the other kind sentinels.
//
// # Interceptors
//
// InterceptorChain runs request and response hooks around every call. The
// package ships logging, header, authentication, rate limiting, circuit
// breaking and Prometheus metrics interceptors.
package payments
