// Package form encodes request parameters into the bracketed
// application/x-www-form-urlencoded dialect the payments API expects.
package form

import (
	"net/url"
	"strings"
)

// Pair is a single encoded key/value.
type Pair struct {
	Key   string
	Value string
}

// Values is an ordered multimap of form parameters. Encoding preserves
// insertion order, unlike url.Values.
type Values struct {
	pairs []Pair
}

// NewValues creates an empty Values.
func NewValues() *Values {
	return &Values{}
}

// Add appends a key/value pair.
func (v *Values) Add(key, value string) {
	v.pairs = append(v.pairs, Pair{Key: key, Value: value})
}

// Set replaces every value stored under key with a single value, keeping the
// position of the first occurrence.
func (v *Values) Set(key, value string) {
	kept := v.pairs[:0]
	replaced := false

	for _, pair := range v.pairs {
		if pair.Key != key {
			kept = append(kept, pair)

			continue
		}

		if !replaced {
			kept = append(kept, Pair{Key: key, Value: value})
			replaced = true
		}
	}

	v.pairs = kept

	if !replaced {
		v.Add(key, value)
	}
}

// Get returns the first value stored under key.
func (v *Values) Get(key string) string {
	if v == nil {
		return ""
	}

	for _, pair := range v.pairs {
		if pair.Key == key {
			return pair.Value
		}
	}

	return ""
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	if v == nil {
		return false
	}

	for _, pair := range v.pairs {
		if pair.Key == key {
			return true
		}
	}

	return false
}

// Len returns the number of pairs.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}

	return len(v.pairs)
}

// Empty reports whether there are no pairs. A nil Values is empty.
func (v *Values) Empty() bool {
	return v.Len() == 0
}

// Pairs returns a copy of the pairs in insertion order.
func (v *Values) Pairs() []Pair {
	if v.Empty() {
		return nil
	}

	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)

	return out
}

// Clone returns a deep copy. Cloning nil yields an empty Values.
func (v *Values) Clone() *Values {
	return &Values{pairs: v.Pairs()}
}

// Merge appends every pair of other.
func (v *Values) Merge(other *Values) {
	if other == nil {
		return
	}

	v.pairs = append(v.pairs, other.pairs...)
}

// Encode renders the values as a query string. Square brackets in keys are
// left unescaped so the result stays readable in logs.
func (v *Values) Encode() string {
	if v.Empty() {
		return ""
	}

	var builder strings.Builder

	for index, pair := range v.pairs {
		if index > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(escapeKey(pair.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(pair.Value))
	}

	return builder.String()
}

// ToValues converts to url.Values. Ordering is lost.
func (v *Values) ToValues() url.Values {
	out := url.Values{}

	if v == nil {
		return out
	}

	for _, pair := range v.pairs {
		out.Add(pair.Key, pair.Value)
	}

	return out
}

var bracketReplacer = strings.NewReplacer("%5B", "[", "%5D", "]")

func escapeKey(key string) string {
	return bracketReplacer.Replace(url.QueryEscape(key))
}
