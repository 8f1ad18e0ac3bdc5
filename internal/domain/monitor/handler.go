// Package monitor exposes the operational probes used by the provincial
// operations team to watch each hospital installation: liveness, database
// reachability, host identity and light resource sampling. The probes are
// read-only and deliberately cheap so polling never loads the hospital
// server.
package monitor

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/hie/agent/internal/platform/db"
)

// Resource sampling window. Kept short so the probe itself stays cheap.
const sampleInterval = 100 * time.Millisecond

type Handler struct {
	ds db.Datasource
}

func NewHandler(ds db.Datasource) *Handler {
	return &Handler{ds: ds}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/status", h.Status)
	g.GET("/database", h.Database)
	g.GET("/system-info", h.SystemInfo)
	g.GET("/performance", h.Performance)
	g.GET("/full-check", h.FullCheck)
}

// Status reports process liveness only.
func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "running"})
}

// Database runs a trivial query against the reporting database and reports
// reachability without failing the probe itself.
func (h *Handler) Database(c echo.Context) error {
	if _, err := h.ds.QueryRows(c.Request().Context(), "SELECT 1"); err != nil {
		return c.JSON(http.StatusOK, map[string]any{"database": false, "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"database": true, "error": nil})
}

// SystemInfo identifies the host this installation runs on.
func (h *Handler) SystemInfo(c echo.Context) error {
	hostname, _ := os.Hostname()
	platform := runtime.GOOS
	if info, err := host.Info(); err == nil {
		platform = info.Platform + " " + info.PlatformVersion
	}
	return c.JSON(http.StatusOK, map[string]any{
		"hostname":    hostname,
		"os":          platform,
		"time":        time.Now().Format("2006-01-02 15:04:05"),
		"go":          runtime.Version(),
		"environment": environment(),
	})
}

// Performance samples cpu, memory and disk usage percentages.
func (h *Handler) Performance(c echo.Context) error {
	out := samplePerformance()
	out["environment"] = environment()
	return c.JSON(http.StatusOK, out)
}

// FullCheck combines liveness, database reachability and resource sampling
// in one probe for dashboards that poll a single URL.
func (h *Handler) FullCheck(c echo.Context) error {
	dbOK := true
	var dbErr any
	if _, err := h.ds.QueryRows(c.Request().Context(), "SELECT version()"); err != nil {
		dbOK = false
		dbErr = err.Error()
	}
	return c.JSON(http.StatusOK, map[string]any{
		"system":         "running",
		"database":       dbOK,
		"database_error": dbErr,
		"time":           time.Now().Format("2006-01-02 15:04:05"),
		"performance":    samplePerformance(),
	})
}

func samplePerformance() map[string]any {
	out := map[string]any{"cpu": nil, "memory": nil, "disk": nil}
	if percents, err := cpu.Percent(sampleInterval, false); err == nil && len(percents) > 0 {
		out["cpu"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		out["memory"] = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		out["disk"] = du.UsedPercent
	}
	return out
}

func environment() string {
	if runtime.GOOS == "linux" {
		return "docker"
	}
	return "windows"
}
