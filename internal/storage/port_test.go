package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draft struct {
	Name string `json:"name"`
	Days string `json:"days"`
}

func TestMemory_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v1"))
	require.NoError(t, m.Set(ctx, "k", "v2"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v, "last write wins")

	require.NoError(t, m.Remove(ctx, "k"))
	require.NoError(t, m.Remove(ctx, "k"))
	assert.Equal(t, 0, m.Len())
}

func TestJSON_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	in := draft{Name: "Ada", Days: "3"}
	require.NoError(t, SetJSON(ctx, m, "reservationFormData", in))

	var out draft
	ok, err := GetJSON(ctx, m, "reservationFormData", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	// saving what was loaded changes nothing
	require.NoError(t, SetJSON(ctx, m, "reservationFormData", out))
	var again draft
	_, err = GetJSON(ctx, m, "reservationFormData", &again)
	require.NoError(t, err)
	assert.Equal(t, in, again)
}

func TestGetJSON_MissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	out := draft{Name: "keep"}
	ok, err := GetJSON(ctx, m, "absent", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "keep", out.Name)

	require.NoError(t, m.Set(ctx, "bad", "{"))
	_, err = GetJSON(ctx, m, "bad", &out)
	assert.Error(t, err)
}

func TestScope_IsolatesSessions(t *testing.T) {
	ctx := context.Background()
	shared := NewMemory()
	a := Scope(shared, "a")
	b := Scope(shared, "b")

	require.NoError(t, a.Set(ctx, "lastClickedCar", "A1"))
	_, ok, err := b.Get(ctx, "lastClickedCar")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, _ := shared.Get(ctx, "session:a:lastClickedCar")
	assert.True(t, ok)
	assert.Equal(t, "A1", v)

	require.NoError(t, a.Remove(ctx, "lastClickedCar"))
	assert.Equal(t, 0, shared.Len())
}
