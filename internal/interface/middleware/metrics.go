package middleware

import (
	"expvar"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics counts requests per status code and tracks total latency
// in the expvar map published under name.
func Metrics(m *expvar.Map) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.Add("requests_total", 1)
		m.Add("status_"+strconv.Itoa(c.Writer.Status()), 1)
		m.Add("latency_us_total", time.Since(start).Microseconds())
	}
}

// NewMetricsMap publishes an expvar map once; later calls return the same map.
func NewMetricsMap(name string) *expvar.Map {
	if v, ok := expvar.Get(name).(*expvar.Map); ok {
		return v
	}
	return expvar.NewMap(name)
}
