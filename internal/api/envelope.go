package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Unwrap decodes raw into v, accepting both a bare payload and a single-item
// {"data": ...} envelope. Endpoints disagree on which shape they return.
func Unwrap(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err == nil && len(fields) == 1 {
			if data, ok := fields["data"]; ok {
				raw = data
			}
		}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// DoData performs a request whose response may be enveloped in {"data": ...}
// and decodes the payload into result.
func (c *Client) DoData(ctx context.Context, method, path string, body, result any, opts ...RequestOption) error {
	var raw json.RawMessage
	if err := c.Do(ctx, method, path, body, &raw, opts...); err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return Unwrap(raw, result)
}
