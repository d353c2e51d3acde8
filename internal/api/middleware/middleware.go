package middleware

import (
    "time"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"
    "golang.org/x/time/rate"

    "github.com/campuslink/backend/pkg/logger"
    "github.com/campuslink/backend/pkg/response"
)

// RequestLogger 逐请求访问日志
func RequestLogger() gin.HandlerFunc {
    return func(c *gin.Context) {
        start := time.Now()
        c.Next()
        logger.Info("http request",
            zap.String("method", c.Request.Method),
            zap.String("path", c.Request.URL.Path),
            zap.Int("status", c.Writer.Status()),
            zap.Duration("latency", time.Since(start)),
            zap.String("client", c.ClientIP()),
        )
    }
}

// RateLimit 进程级令牌桶限流，rps<=0 时直通
func RateLimit(rps float64, burst int) gin.HandlerFunc {
    if rps <= 0 {
        return func(c *gin.Context) { c.Next() }
    }
    if burst <= 0 {
        burst = int(rps)
    }
    lim := rate.NewLimiter(rate.Limit(rps), burst)
    return func(c *gin.Context) {
        if !lim.Allow() {
            response.TooManyRequests(c, "rate limit exceeded")
            c.Abort()
            return
        }
        c.Next()
    }
}
