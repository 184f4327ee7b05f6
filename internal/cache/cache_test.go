package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestCacheHitAndNormalization(t *testing.T) {
	c := New(30*time.Minute, 10)
	c.Put("HVAC  Repair", &model.Result{Query: "hvac repair"})

	got := c.Get("hvac repair")
	require.NotNil(t, got)
	assert.Equal(t, "hvac repair", got.Query)
}

func TestCacheMiss(t *testing.T) {
	c := New(30*time.Minute, 10)
	assert.Nil(t, c.Get("never stored"))
}

func TestCacheExpiry(t *testing.T) {
	c := New(30*time.Minute, 10)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	c.Put("q", &model.Result{Query: "q"})
	require.NotNil(t, c.Get("q"))

	clock = clock.Add(31 * time.Minute)
	assert.Nil(t, c.Get("q"))
	assert.Zero(t, c.Len(), "expired entry is removed on read")
}

func TestCacheEvictsOldestFirst(t *testing.T) {
	c := New(30*time.Minute, 2)
	c.Put("first", &model.Result{Query: "first"})
	c.Put("second", &model.Result{Query: "second"})
	c.Put("third", &model.Result{Query: "third"})

	assert.Nil(t, c.Get("first"))
	assert.NotNil(t, c.Get("second"))
	assert.NotNil(t, c.Get("third"))
	assert.Equal(t, 2, c.Len())
}

func TestCacheReinsertRefreshesSlot(t *testing.T) {
	c := New(30*time.Minute, 2)
	c.Put("a", &model.Result{Query: "a"})
	c.Put("b", &model.Result{Query: "b"})
	c.Put("a", &model.Result{Query: "a2"})
	c.Put("c", &model.Result{Query: "c"})

	assert.Nil(t, c.Get("b"), "b was oldest after a refreshed")
	require.NotNil(t, c.Get("a"))
	assert.Equal(t, "a2", c.Get("a").Query)
}

func TestCacheZeroCapacityDisabled(t *testing.T) {
	c := New(30*time.Minute, 0)
	c.Put("q", &model.Result{Query: "q"})
	assert.Nil(t, c.Get("q"))
}
