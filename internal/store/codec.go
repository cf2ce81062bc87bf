package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ReadJSON loads the value under key into dst.
//
// Two degraded conditions resolve to "leave dst at its caller-supplied
// default" instead of failing: the key being absent, and the stored value
// being malformed JSON. Corruption is logged and then treated as an empty
// read — a bad record must never take the whole application down.
// Only real storage I/O errors propagate.
func ReadJSON(ctx context.Context, kv KV, logger *slog.Logger, key string, dst any) error {
	_, err := ReadJSONFound(ctx, kv, logger, key, dst)
	return err
}

// ReadJSONFound is ReadJSON, plus a report of whether a usable record was
// decoded into dst. Callers that treat "a record exists, whatever its
// contents" differently from "no record" check the flag; an absent key and
// a corrupt value both come back false.
func ReadJSONFound(ctx context.Context, kv KV, logger *slog.Logger, key string, dst any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNoKey) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: reading %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Error("malformed stored record, falling back to default",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false, nil
	}
	return true, nil
}

// WriteJSON marshals v and stores it under key, replacing any prior value.
func WriteJSON(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encoding %s: %w", key, err)
	}
	if err := kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("store: writing %s: %w", key, err)
	}
	return nil
}
