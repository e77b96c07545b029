package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthCheck reports the status of every backing dependency plus hub
// counters. Degraded dependencies flip the overall status and the HTTP
// code so load balancers can act on it.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	checkCtx, checkCancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer checkCancel()

	healthy := true
	deps := gin.H{}

	if err := srv.db.PingContext(checkCtx); err != nil {
		healthy = false
		deps["postgres"] = dependencyStatus{Status: "down", Error: err.Error()}
	} else {
		deps["postgres"] = dependencyStatus{Status: "up"}
	}

	if err := srv.redis.Ping(checkCtx); err != nil {
		healthy = false
		deps["redis"] = dependencyStatus{Status: "down", Error: err.Error()}
	} else {
		deps["redis"] = dependencyStatus{Status: "up"}
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	body := gin.H{
		"status":       status,
		"dependencies": deps,
	}

	if stats, err := srv.rtUC.GetStats(checkCtx); err == nil {
		body["realtime"] = stats
	}

	c.JSON(code, body)
}

// readyCheck reports whether the server can take traffic.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	checkCtx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := srv.db.PingContext(checkCtx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// liveCheck only proves the process is responsive.
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
