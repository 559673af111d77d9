package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimiter_PerClientBuckets(t *testing.T) {
	l := NewIPLimiter(1, 2)
	require.NotNil(t, l)

	a, ok := l.GetBucket("10.0.0.1")
	require.True(t, ok)
	assert.Equal(t, int64(2), a.TakeAvailable(5))
	assert.Equal(t, int64(0), a.TakeAvailable(1))

	b, ok := l.GetBucket("10.0.0.2")
	require.True(t, ok)
	assert.Equal(t, int64(1), b.TakeAvailable(1))

	again, _ := l.GetBucket("10.0.0.1")
	assert.Same(t, a, again)
}

func TestIPLimiter_Disabled(t *testing.T) {
	assert.Nil(t, NewIPLimiter(0, 10))
}

func TestMethodLimiter_PrefixMatch(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(BucketRule{
		Key:          "/api/folders",
		FillInterval: time.Second,
		Capacity:     1,
		Quantum:      1,
	})

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/folders/abc?x=1", nil)

	key := l.Key(c)
	assert.Equal(t, "/api/folders/abc", key)

	_, ok := l.GetBucket(key)
	assert.True(t, ok)
	_, ok = l.GetBucket("/api/notes")
	assert.False(t, ok)
}

func TestRateRule(t *testing.T) {
	r := RateRule("/api/notes", 4, 1)
	assert.Equal(t, "/api/notes", r.Key)
	assert.Equal(t, int64(4), r.Capacity)
	assert.Equal(t, 250*time.Millisecond, r.FillInterval)
	assert.Equal(t, int64(1), r.Quantum)
}
