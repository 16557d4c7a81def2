package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// healthHandler reports liveness plus basic host figures. Host metrics are
// best effort and omitted when unavailable.
func healthHandler(started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		}
		if vm, err := mem.VirtualMemoryWithContext(c.Request.Context()); err == nil {
			body["memoryUsedPercent"] = vm.UsedPercent
		}
		if avg, err := load.AvgWithContext(c.Request.Context()); err == nil {
			body["load1"] = avg.Load1
		}
		c.JSON(http.StatusOK, body)
	}
}
