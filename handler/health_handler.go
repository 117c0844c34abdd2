package handler

import (
	"notesvc/utils"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HealthHandler reports liveness plus a small host snapshot.
func HealthHandler(c *gin.Context) {
	payload := gin.H{"status": "ok"}

	if vm, err := mem.VirtualMemory(); err == nil {
		payload["memory_used_percent"] = vm.UsedPercent
	}
	if uptime, err := host.Uptime(); err == nil {
		payload["host_uptime_seconds"] = uptime
	}

	utils.Success(c, payload)
}
