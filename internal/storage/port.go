// Package storage is the key-value port behind which the renter's session
// state lives: the selected car, the draft reservation and the catalog
// snapshot.  Values are opaque strings; the JSON codec is applied at the
// boundary by GetJSON and SetJSON.
//
// Writes are not transactional.  Two writers racing on the same key resolve
// as last write wins.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Port is implemented by every storage backend.  Get reports ok=false for a
// missing key without an error.  Remove of a missing key is not an error.
type Port interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// GetJSON reads key and decodes it into v.  It reports ok=false when the key
// is absent, in which case v is untouched.
func GetJSON(ctx context.Context, p Port, key string, v any) (bool, error) {
	raw, ok, err := p.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, p Port, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return p.Set(ctx, key, string(b))
}

// scoped namespaces every key of a shared Port under one session.
type scoped struct {
	port   Port
	prefix string
}

// Scope returns a Port whose keys are private to sessionID.
func Scope(p Port, sessionID string) Port {
	return &scoped{port: p, prefix: "session:" + sessionID + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.port.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.port.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	return s.port.Remove(ctx, s.prefix+key)
}
