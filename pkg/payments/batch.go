package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/payments-client/internal/constants"
)

// BatchOperationType names a payment intent operation in a batch.
type BatchOperationType string

// Batch operation types.
const (
	BatchGet     BatchOperationType = "get"
	BatchCreate  BatchOperationType = "create"
	BatchUpdate  BatchOperationType = "update"
	BatchConfirm BatchOperationType = "confirm"
	BatchCapture BatchOperationType = "capture"
	BatchCancel  BatchOperationType = "cancel"
)

// BatchOperation is a single payment intent call in a batch. Target is
// ignored by BatchCreate. Params must be the params type of the operation
// (for example *PaymentIntentCaptureParams for BatchCapture) or nil.
type BatchOperation struct {
	ID       string
	Type     BatchOperationType
	Target   Identifiable
	Params   interface{}
	Callback func(result *BatchResult)
}

// BatchResult is the outcome of one BatchOperation.
type BatchResult struct {
	ID       string
	Success  bool
	Intent   *PaymentIntent
	Error    error
	Duration time.Duration
}

// BatchExecutor runs payment intent operations concurrently. Every
// operation is independent: a failure never cancels the others.
type BatchExecutor struct {
	client      PaymentIntentsClient
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(client PaymentIntentsClient, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the per-operation timeout.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs operations and returns their results in input order.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func(index int, operation BatchOperation) {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			intent, err := b.executeOperation(opCtx, operation)

			result := &BatchResult{
				ID:       operation.ID,
				Success:  err == nil,
				Intent:   intent,
				Error:    err,
				Duration: time.Since(start),
			}
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}
		}(index, operation)
	}

	waitGroup.Wait()

	return results
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) (*PaymentIntent, error) {
	switch operation.Type {
	case BatchGet:
		params, err := batchParams[PaymentIntentRetrieveParams](operation)
		if err != nil {
			return nil, err
		}

		return b.client.Get(ctx, operation.Target, params)
	case BatchCreate:
		params, err := batchParams[PaymentIntentCreateParams](operation)
		if err != nil {
			return nil, err
		}

		return b.client.Create(ctx, params)
	case BatchUpdate:
		params, err := batchParams[PaymentIntentUpdateParams](operation)
		if err != nil {
			return nil, err
		}

		return b.client.Update(ctx, operation.Target, params)
	case BatchConfirm:
		params, err := batchParams[PaymentIntentConfirmParams](operation)
		if err != nil {
			return nil, err
		}

		return b.client.Confirm(ctx, operation.Target, params)
	case BatchCapture:
		params, err := batchParams[PaymentIntentCaptureParams](operation)
		if err != nil {
			return nil, err
		}

		return b.client.Capture(ctx, operation.Target, params)
	case BatchCancel:
		params, err := batchParams[PaymentIntentCancelParams](operation)
		if err != nil {
			return nil, err
		}

		return b.client.Cancel(ctx, operation.Target, params)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, operation.Type)
	}
}

func batchParams[P any](operation BatchOperation) (*P, error) {
	if operation.Params == nil {
		return nil, nil
	}

	params, ok := operation.Params.(*P)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not accept %T", ErrInvalidBatchParams, operation.Type, operation.Params)
	}

	return params, nil
}

// BatchBuilder helps build batch operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{}
}

// AddCreate adds a create operation.
func (b *BatchBuilder) AddCreate(id string, params *PaymentIntentCreateParams) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: BatchCreate, Params: params})
}

// AddGet adds a retrieve operation.
func (b *BatchBuilder) AddGet(id string, target Identifiable) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: BatchGet, Target: target})
}

// AddConfirm adds a confirm operation.
func (b *BatchBuilder) AddConfirm(id string, target Identifiable, params *PaymentIntentConfirmParams) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: BatchConfirm, Target: target, Params: params})
}

// AddCapture adds a capture operation.
func (b *BatchBuilder) AddCapture(id string, target Identifiable, params *PaymentIntentCaptureParams) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: BatchCapture, Target: target, Params: params})
}

// AddCancel adds a cancel operation.
func (b *BatchBuilder) AddCancel(id string, target Identifiable, params *PaymentIntentCancelParams) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: BatchCancel, Target: target, Params: params})
}

// AddOperation adds a custom operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
