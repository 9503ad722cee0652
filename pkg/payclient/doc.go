// Package payclient is the entry point for building a payments.Client.
//
// It normalizes and validates a payments.Config, chooses the credential
// source (a secret API key, or OAuth2 client credentials) and wires the
// shared request pipeline behind the resource clients.
//
// Quick start
//
//	ctx := context.Background()
//
//	cli, err := payclient.New(ctx, &payments.Config{
//	  APIKey: os.Getenv("PAYMENTS_API_KEY"),
//	})
//	if err != nil { log.Fatal(err) }
//
//	intent, err := cli.PaymentIntents().Create(ctx, &payments.PaymentIntentCreateParams{
//	  Amount:   payments.Int64(2000),
//	  Currency: payments.String("usd"),
//	})
//	if err != nil { log.Fatal(err) }
//
//	intent, err = cli.PaymentIntents().Confirm(ctx, intent, &payments.PaymentIntentConfirmParams{
//	  PaymentMethod: payments.String("pm_card_visa"),
//	})
//
// APIBase defaults to the production API. A value without a scheme gets
// "https://" and a trailing slash is removed, so "localhost:12111/" and
// "https://localhost:12111" are the same origin.
package payclient
