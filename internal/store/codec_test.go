package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeKV is a minimal map-backed KV for exercising the codec helpers
// without pulling in a real backend.
type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, ErrNoKey
	}
	return v, nil
}

func (f *fakeKV) Put(_ context.Context, key string, value []byte) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadJSON_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()

	type record struct {
		Name string `json:"name"`
	}

	require.NoError(t, WriteJSON(ctx, kv, "profileData", record{Name: "Ada"}))

	var got record
	require.NoError(t, ReadJSON(ctx, kv, discardLogger(), "profileData", &got))
	require.Equal(t, "Ada", got.Name)
}

func TestReadJSON_MissingKeyKeepsDefault(t *testing.T) {
	kv := newFakeKV()

	got := []string{"default"}
	err := ReadJSON(context.Background(), kv, discardLogger(), "communities", &got)
	require.NoError(t, err)
	require.Equal(t, []string{"default"}, got, "missing key must leave the caller's default untouched")
}

func TestReadJSON_CorruptValueKeepsDefault(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, "registeredUsers", []byte(`{not json`)))

	got := []string{}
	err := ReadJSON(ctx, kv, discardLogger(), "registeredUsers", &got)
	require.NoError(t, err, "corruption is logged and defaulted, never propagated")
	require.Empty(t, got)
}

func TestReadJSONFound(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()

	var got map[string]string
	found, err := ReadJSONFound(ctx, kv, discardLogger(), "profileData", &got)
	require.NoError(t, err)
	require.False(t, found, "absent key reports not found")

	require.NoError(t, kv.Put(ctx, "profileData", []byte(`{broken`)))
	found, err = ReadJSONFound(ctx, kv, discardLogger(), "profileData", &got)
	require.NoError(t, err)
	require.False(t, found, "corrupt record reports not found")

	require.NoError(t, WriteJSON(ctx, kv, "profileData", map[string]string{"name": "Ada"}))
	found, err = ReadJSONFound(ctx, kv, discardLogger(), "profileData", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Ada", got["name"])
}

func TestUserDataKey(t *testing.T) {
	if got := UserDataKey("u42"); got != "userData_u42" {
		t.Errorf("UserDataKey() = %q, want %q", got, "userData_u42")
	}
}
