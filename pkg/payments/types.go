package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Identifiable is anything that names a remote resource: a bare ID or a
// previously fetched record.
type Identifiable interface {
	GetID() string
}

// ID is a bare resource identifier.
type ID string

// GetID implements Identifiable.
func (id ID) GetID() string {
	return string(id)
}

// RequestOptions is the per-call options bag forwarded verbatim to the
// transport. Empty fields fall back to the client configuration.
type RequestOptions struct {
	// APIKey overrides the configured credentials for this call.
	APIKey string `json:"-" yaml:"-"`
	// BaseURL overrides the configured API base (e.g. a test server).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// IdempotencyKey is sent as the Idempotency-Key header.
	IdempotencyKey string `json:"idempotency_key,omitempty" yaml:"idempotency_key,omitempty"`
	// Account performs the call on behalf of a connected account.
	Account string `json:"account,omitempty" yaml:"account,omitempty"`
	// APIVersion pins the remote API version for this call.
	APIVersion string `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	// Headers are extra headers added verbatim.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Clone returns a deep copy. Cloning nil yields the zero value.
func (o *RequestOptions) Clone() RequestOptions {
	if o == nil {
		return RequestOptions{}
	}

	clone := *o

	if o.Headers != nil {
		clone.Headers = make(map[string]string, len(o.Headers))
		for key, value := range o.Headers {
			clone.Headers[key] = value
		}
	}

	return clone
}

// Params is embedded by every parameter struct.
type Params struct {
	// Expand lists relations to embed in the response instead of their IDs.
	Expand []string `form:"expand"`
	// Options is the per-call options bag. It is never encoded as a parameter.
	Options *RequestOptions `form:"-"`
}

// AddExpand appends a relation to expand.
func (p *Params) AddExpand(field string) {
	p.Expand = append(p.Expand, field)
}

// GetParams returns the embedded Params.
func (p *Params) GetParams() *Params {
	return p
}

// ListParams are the cursor parameters shared by list endpoints.
type ListParams struct {
	Params

	// Limit is the page size, between 1 and 100.
	Limit *int64 `form:"limit"`
	// StartingAfter is the cursor for the next page.
	StartingAfter *string `form:"starting_after"`
	// EndingBefore is the cursor for the previous page.
	EndingBefore *string `form:"ending_before"`
}

// GetListParams returns the embedded ListParams.
func (p *ListParams) GetListParams() *ListParams {
	return p
}

// RangeQueryParams filters a numeric field (usually a unix timestamp).
type RangeQueryParams struct {
	GreaterThan        int64 `form:"gt"`
	GreaterThanOrEqual int64 `form:"gte"`
	LesserThan         int64 `form:"lt"`
	LesserThanOrEqual  int64 `form:"lte"`
}

// ListResponse is the list envelope returned by list endpoints.
type ListResponse[T Identifiable] struct {
	Object  string `json:"object"   yaml:"object"`
	Data    []T    `json:"data"     yaml:"data"`
	HasMore bool   `json:"has_more" yaml:"has_more"`
	URL     string `json:"url"      yaml:"url"`
}

// FirstID returns the ID of the first record, the ending_before cursor.
func (l *ListResponse[T]) FirstID() string {
	if l == nil || len(l.Data) == 0 {
		return ""
	}

	return l.Data[0].GetID()
}

// LastID returns the ID of the last record, the starting_after cursor.
func (l *ListResponse[T]) LastID() string {
	if l == nil || len(l.Data) == 0 {
		return ""
	}

	return l.Data[len(l.Data)-1].GetID()
}

// Expandable is a relation returned either as a bare ID or, when requested
// through Params.Expand, as the embedded record.
type Expandable[T any] struct {
	ID     string
	Object *T
}

// ExpandableID creates an unexpanded relation.
func ExpandableID[T any](id string) *Expandable[T] {
	return &Expandable[T]{ID: id}
}

// GetID implements Identifiable. It is nil-safe.
func (e *Expandable[T]) GetID() string {
	if e == nil {
		return ""
	}

	return e.ID
}

// IsExpanded reports whether the embedded record is present.
func (e *Expandable[T]) IsExpanded() bool {
	return e != nil && e.Object != nil
}

// UnmarshalJSON accepts either a JSON string or an object with an "id" field.
func (e *Expandable[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		err := json.Unmarshal(data, &e.ID)
		if err != nil {
			return fmt.Errorf("decoding relation id: %w", err)
		}

		return nil
	}

	var probe struct {
		ID string `json:"id"`
	}

	err := json.Unmarshal(data, &probe)
	if err != nil {
		return fmt.Errorf("decoding expanded relation: %w", err)
	}

	var object T

	err = json.Unmarshal(data, &object)
	if err != nil {
		return fmt.Errorf("decoding expanded relation: %w", err)
	}

	e.ID = probe.ID
	e.Object = &object

	return nil
}

// MarshalJSON re-encodes the relation in the shape it was received.
func (e Expandable[T]) MarshalJSON() ([]byte, error) {
	if e.Object != nil {
		return json.Marshal(e.Object)
	}

	return json.Marshal(e.ID)
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (e Expandable[T]) MarshalYAML() (interface{}, error) {
	if e.Object != nil {
		return e.Object, nil
	}

	return e.ID, nil
}

// UnixTime converts an API timestamp to time.Time. Zero stays zero.
func UnixTime(seconds int64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}

	return time.Unix(seconds, 0).UTC()
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
