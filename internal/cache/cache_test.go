package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New(true)
	etag := c.Set("k", []byte(`{"a":1}`), time.Minute)
	require.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, []byte(`{"a":1}`), data)
	require.Equal(t, etag, gotETag)

	_, _, ok = c.Get("missing")
	require.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second) // already expired
	_, _, ok := c.Get("k")
	require.False(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	require.NotEmpty(t, etag) // ETag still computed for If-None-Match
	_, _, ok := c.Get("k")
	require.False(t, ok)
}

func TestComputeETagStable(t *testing.T) {
	require.Equal(t, ComputeETag([]byte("x")), ComputeETag([]byte("x")))
	require.NotEqual(t, ComputeETag([]byte("x")), ComputeETag([]byte("y")))
}
