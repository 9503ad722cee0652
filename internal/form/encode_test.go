package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/payments-client/internal/form"
)

type address struct {
	City  string `form:"city"`
	Line1 string `form:"line1"`
}

type shipping struct {
	Name    *string  `form:"name"`
	Address *address `form:"address"`
}

type Base struct {
	Expand []string `form:"expand"`
	Secret string   `form:"-"`
}

type sample struct {
	Base

	Amount   *int64            `form:"amount"`
	Currency *string           `form:"currency"`
	Confirm  *bool             `form:"confirm"`
	Types    []string          `form:"payment_method_types"`
	Metadata map[string]string `form:"metadata"`
	Shipping *shipping         `form:"shipping"`
	Count    int               `form:"count"`
	Note     string            `form:"note"`
	Ignored  string
}

type cents int64

func (c cents) AppendForm(values *form.Values, key string) {
	values.Add(key, "custom")
}

type withAppender struct {
	Amount cents `form:"amount"`
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   interface{}
		expected []form.Pair
	}{
		{
			name:     "nil params",
			params:   nil,
			expected: nil,
		},
		{
			name:     "typed nil pointer",
			params:   (*sample)(nil),
			expected: nil,
		},
		{
			name:     "zero struct",
			params:   &sample{},
			expected: nil,
		},
		{
			name: "scalars in declaration order",
			params: &sample{
				Amount:   int64Ptr(2000),
				Currency: strPtr("usd"),
				Confirm:  boolPtr(false),
				Count:    3,
				Note:     "hi",
				Ignored:  "never sent",
			},
			expected: []form.Pair{
				{Key: "amount", Value: "2000"},
				{Key: "currency", Value: "usd"},
				{Key: "confirm", Value: "false"},
				{Key: "count", Value: "3"},
				{Key: "note", Value: "hi"},
			},
		},
		{
			name:   "explicit empty string pointer",
			params: &sample{Currency: strPtr("")},
			expected: []form.Pair{
				{Key: "currency", Value: ""},
			},
		},
		{
			name: "embedded base is flattened",
			params: &sample{
				Base: Base{Expand: []string{"customer", "latest_charge"}, Secret: "sk"},
			},
			expected: []form.Pair{
				{Key: "expand[0]", Value: "customer"},
				{Key: "expand[1]", Value: "latest_charge"},
			},
		},
		{
			name: "slices, maps and nested structs",
			params: &sample{
				Types:    []string{"card"},
				Metadata: map[string]string{"order": "42", "cart": "7"},
				Shipping: &shipping{
					Name:    strPtr("Jenny"),
					Address: &address{City: "Berlin"},
				},
			},
			expected: []form.Pair{
				{Key: "payment_method_types[0]", Value: "card"},
				{Key: "metadata[cart]", Value: "7"},
				{Key: "metadata[order]", Value: "42"},
				{Key: "shipping[name]", Value: "Jenny"},
				{Key: "shipping[address][city]", Value: "Berlin"},
			},
		},
		{
			name:   "appender controls its encoding",
			params: withAppender{Amount: 5},
			expected: []form.Pair{
				{Key: "amount", Value: "custom"},
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			values := form.Encode(testCase.params)
			require.NotNil(t, values)
			assert.Equal(t, testCase.expected, values.Pairs())
		})
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	t.Run("encode keeps order and brackets", func(t *testing.T) {
		t.Parallel()

		values := form.NewValues()
		values.Add("metadata[note]", "a b&c")
		values.Add("amount", "100")

		assert.Equal(t, "metadata[note]=a+b%26c&amount=100", values.Encode())
	})

	t.Run("set replaces in place", func(t *testing.T) {
		t.Parallel()

		values := form.NewValues()
		values.Add("limit", "10")
		values.Add("customer", "cus_1")
		values.Add("limit", "20")
		values.Set("limit", "50")

		assert.Equal(t, []form.Pair{
			{Key: "limit", Value: "50"},
			{Key: "customer", Value: "cus_1"},
		}, values.Pairs())

		values.Set("starting_after", "pi_9")
		assert.Equal(t, "pi_9", values.Get("starting_after"))
		assert.Equal(t, 3, values.Len())
	})

	t.Run("clone is independent", func(t *testing.T) {
		t.Parallel()

		original := form.NewValues()
		original.Add("amount", "1")

		clone := original.Clone()
		clone.Set("amount", "2")
		clone.Add("currency", "eur")

		assert.Equal(t, "1", original.Get("amount"))
		assert.False(t, original.Has("currency"))
		assert.Equal(t, "2", clone.Get("amount"))
	})

	t.Run("nil values are empty", func(t *testing.T) {
		t.Parallel()

		var values *form.Values

		assert.True(t, values.Empty())
		assert.Equal(t, "", values.Encode())
		assert.Empty(t, values.ToValues())
		assert.NotNil(t, values.Clone())
	})
}
