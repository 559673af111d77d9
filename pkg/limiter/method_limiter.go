package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// MethodLimiter 按请求路径前缀限流，只对注册过的前缀生效
type MethodLimiter struct {
	*Limiter
}

func NewMethodLimiter() Face {
	return &MethodLimiter{
		Limiter: &Limiter{buckets: make(map[string]*ratelimit.Bucket)},
	}
}

// Key 返回请求路径中去掉查询串的部分
func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if index := strings.Index(uri, "?"); index >= 0 {
		return uri[:index]
	}
	return uri
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for prefix, b := range l.buckets {
		if strings.HasPrefix(key, prefix) {
			return b, true
		}
	}
	return nil, false
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.add(rules...)
	return l
}

func secondOver(rate int64) time.Duration {
	return time.Second / time.Duration(rate)
}
