package limiter

import (
	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// IPLimiter 按客户端 IP 限流，每个 IP 首次出现时按模板规则创建令牌桶
type IPLimiter struct {
	*Limiter
	rule BucketRule
}

// NewIPLimiter 创建按 IP 限流的限流器
// rate 为每秒请求数，burst 为桶容量；rate <= 0 时返回 nil 表示不限流
func NewIPLimiter(rate, burst int64) Face {
	if rate <= 0 {
		return nil
	}
	return &IPLimiter{
		Limiter: &Limiter{buckets: make(map[string]*ratelimit.Bucket)},
		rule:    RateRule("", rate, burst),
	}
}

func (l *IPLimiter) Key(c *gin.Context) string {
	return c.ClientIP()
}

func (l *IPLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	if b, ok := l.get(key); ok {
		return b, true
	}
	rule := l.rule
	rule.Key = key
	l.add(rule)
	return l.get(key)
}

func (l *IPLimiter) AddBuckets(rules ...BucketRule) Face {
	l.add(rules...)
	return l
}
