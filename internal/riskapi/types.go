package riskapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Unavailable is shown for result fields the server left out or set to null.
const Unavailable = "unavailable"

// Request is the body sent to the analysis endpoint.
type Request struct {
	TransactionID string `json:"transaction_id"`
	Details       string `json:"details"`
}

// Value is a single result field converted for display.
type Value struct {
	Text  string
	Valid bool
}

// String returns the display text, or Unavailable when the field was absent.
func (v Value) String() string {
	if !v.Valid {
		return Unavailable
	}
	return v.Text
}

// Text builds a valid Value.
func Text(s string) Value {
	return Value{Text: s, Valid: true}
}

// Result is the risk assessment returned for one transaction.
type Result struct {
	TransactionID      Value
	ExtractedEntities  Value
	EntityType         Value
	RiskScore          Value
	SupportingEvidence Value
	ConfidenceScore    Value
	Reason             Value

	// Raw is the response body exactly as received.
	Raw json.RawMessage
}

// Field pairs a result value with its label.
type Field struct {
	Label string
	Value Value
}

// Fields returns the result values in display order.
func (r Result) Fields() []Field {
	return []Field{
		{Label: "Transaction ID", Value: r.TransactionID},
		{Label: "Extracted Entities", Value: r.ExtractedEntities},
		{Label: "Entity Type", Value: r.EntityType},
		{Label: "Risk Score", Value: r.RiskScore},
		{Label: "Supporting Evidence", Value: r.SupportingEvidence},
		{Label: "Confidence Score", Value: r.ConfidenceScore},
		{Label: "Reason", Value: r.Reason},
	}
}

// UnmarshalJSON decodes a response object field by field. Unknown keys are
// ignored and every known key is accepted whatever its JSON type.
func (r *Result) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj == nil {
		return fmt.Errorf("response is null, expected an object")
	}

	targets := map[string]*Value{
		"Transaction_ID":      &r.TransactionID,
		"Extracted_Entities":  &r.ExtractedEntities,
		"Entity_Type":         &r.EntityType,
		"Risk_Score":          &r.RiskScore,
		"Supporting_Evidence": &r.SupportingEvidence,
		"Confidence_Score":    &r.ConfidenceScore,
		"Reason":              &r.Reason,
	}
	for key, dst := range targets {
		raw, ok := obj[key]
		if !ok {
			*dst = Value{}
			continue
		}
		v, err := displayValue(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		*dst = v
	}

	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// displayValue renders one JSON value the way it would appear as text.
func displayValue(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Value{}, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, err
		}
		return Text(s), nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Value{}, err
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			v, err := displayValue(item)
			if err != nil {
				return Value{}, err
			}
			if v.Valid {
				parts = append(parts, v.Text)
			}
		}
		return Text(strings.Join(parts, ", ")), nil
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return Value{}, err
		}
		return Text(buf.String()), nil
	case 't', 'f':
		b, err := strconv.ParseBool(string(trimmed))
		if err != nil {
			return Value{}, err
		}
		return Text(strconv.FormatBool(b)), nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return Value{}, err
		}
		return Text(n.String()), nil
	}
}
