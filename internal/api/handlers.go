package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type commandRequest struct {
	Device  string `form:"device" json:"device"`
	Command string `form:"command" json:"command"`
}

// POST /api/v1/commands
// Accepts the device pattern and command as form fields or JSON and
// transmits the matching codes. Presence of both fields is the only
// validation; an unmatched pattern transmits nothing and still succeeds.
func (s *Server) handleCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if req.Device == "" || req.Command == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device and command are required"})
		return
	}

	result, err := s.shutter.Send(c.Request.Context(), req.Device, req.Command)
	if err != nil {
		resp := gin.H{"error": err.Error()}
		if result != nil {
			resp["tx_id"] = result.TxID
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /api/v1/devices
// Lists the configured devices and the commands each supports.
func (s *Server) handleDevices(c *gin.Context) {
	devices := s.shutter.Devices()
	c.JSON(http.StatusOK, gin.H{"data": devices, "count": len(devices)})
}

// GET /api/v1/status
// Reports the gateway identity, uptime and per-device transmission counters.
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"device_id":      s.deviceInfo.GetDeviceID(),
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
		"devices":        s.shutter.Stats(),
	})
}
