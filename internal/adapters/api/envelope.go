package api

import (
	"encoding/json"
	"fmt"
)

// The backend wraps responses inconsistently. A list may arrive as a raw
// array, as {"data": [...]}, or as {"data": {"list": [...]}}. A single item
// may arrive raw or wrapped under a named key. The two decoders below are the
// only places that knowledge lives.

// decodeList normalizes any supported list envelope to a slice.
// PRE: body is a complete response payload
// POST: Returns the decoded slice or an error naming the unsupported shape
func decodeList[T any](body []byte) ([]T, error) {
	var list []T
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &list); err == nil {
			return list, nil
		}
		var inner struct {
			List json.RawMessage `json:"list"`
		}
		if err := json.Unmarshal(envelope.Data, &inner); err == nil && len(inner.List) > 0 {
			if err := json.Unmarshal(inner.List, &list); err == nil {
				return list, nil
			}
		}
	}

	return nil, fmt.Errorf("unsupported list envelope: %.80s", body)
}

// decodeItem normalizes a single-item response, trying the given wrapper keys
// in priority order before falling back to the raw payload.
// PRE: keys are tried in the order given
// POST: Returns the decoded item or an error naming the unsupported shape
func decodeItem[T any](body []byte, keys ...string) (T, error) {
	var item T

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range keys {
			raw, ok := fields[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(raw, &item); err == nil {
				return item, nil
			}
		}
	}

	if err := json.Unmarshal(body, &item); err != nil {
		return item, fmt.Errorf("unsupported item envelope: %.80s", body)
	}
	return item, nil
}
