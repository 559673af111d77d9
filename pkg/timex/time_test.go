package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	assert.Equal(t, now.Unix(), tt.Unix())
	assert.Equal(t, now.UnixMilli(), tt.UnixMilli())
	assert.Equal(t, now.UnixMicro(), tt.UnixMicro())
	assert.Equal(t, now.UnixNano(), tt.UnixNano())
}

func TestTime_JSON(t *testing.T) {
	tt := Time(time.Date(2024, 1, 1, 12, 0, 0, 123456789, time.UTC).Truncate(time.Millisecond))

	b, err := json.Marshal(tt)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-01T12:00:00.123Z"`, string(b))

	var back Time
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(tt))

	b, err = json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestNext_StrictlyAdvances(t *testing.T) {
	// A previous stamp in the future must still be passed
	// 即使上一次时间在未来，也必须严格递增
	future := Time(time.Now().Add(time.Hour).UTC().Truncate(time.Millisecond))
	next := Next(future)
	assert.True(t, next.After(future))
	assert.Equal(t, future.UnixMilli()+1, next.UnixMilli())

	past := Time(time.Now().Add(-time.Hour))
	assert.True(t, Next(past).After(past))
}

func TestTime_Scan(t *testing.T) {
	var tt Time
	require.NoError(t, tt.Scan("2024-01-01 12:00:00.5"))
	assert.Equal(t, int64(1704110400500), tt.UnixMilli())

	require.NoError(t, tt.Scan(time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))))
	assert.Equal(t, time.UTC, tt.Time().Location())

	require.NoError(t, tt.Scan(nil))
	assert.True(t, tt.IsZero())

	assert.Error(t, tt.Scan(42))
}
