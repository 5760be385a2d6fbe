package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lvm-segments-visualizer/internal/chart"
	"lvm-segments-visualizer/internal/collector"
	"lvm-segments-visualizer/internal/config"
	"lvm-segments-visualizer/internal/health"
	"lvm-segments-visualizer/internal/lvm"
	"lvm-segments-visualizer/internal/metrics"
	"lvm-segments-visualizer/internal/system"
)

// serve runs the exporter: background collection plus the HTTP endpoints
func serve(cfg *config.Config) error {
	log.Println("Starting LVM segments exporter...")

	// Perform one-time system detection
	sysInfo := system.New().Detect()
	if !sysInfo.CanInspectVolumes() {
		log.Println("Warning: pvdisplay is not usable on this host; metrics will stay empty")
	}

	m := metrics.New()
	tool := lvm.NewPVDisplayTool(cfg.PVDisplayPath, cfg.UseSudo)
	c := collector.New(m, tool, cfg.CollectInterval)
	healthService := health.New(c, sysInfo)

	// Start collection in background
	go c.Start()

	setupHTTPHandlers(cfg, sysInfo, healthService, c)

	log.Printf("Starting HTTP server on port %s", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, nil)
}

// setupHTTPHandlers configures HTTP routes
func setupHTTPHandlers(cfg *config.Config, sysInfo *system.SystemInfo, healthService *health.Service, c *collector.Collector) {
	// Metrics endpoint
	http.Handle(cfg.MetricsPath, promhttp.Handler())
	ver := fmt.Sprintf("v%s (%s)", version, commit)

	// Root endpoint with basic info
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `
		<html>
		<head><title>LVM Segments Exporter</title></head>
		<body>
		<h1>LVM Segments Exporter</h1>
		<p><a href="%s">Metrics</a></p>
		<p><a href="/health">Health Check</a></p>
		<p><a href="/health/json">Health JSON</a></p>
		<p><a href="/chart">Segment Chart</a></p>
		<p>Version: %s</p>
		<p>Collect Interval: %s</p>
		<h3>System Information</h3>
		<p>Platform: %s</p>
		<p>pvdisplay Support: %v</p>
		</body>
		</html>
		`, cfg.MetricsPath, ver, cfg.CollectInterval, sysInfo.Platform, sysInfo.CanInspectVolumes())
	})

	// Basic health check endpoint
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"lvm-segments-visualizer"}`)
	})

	// Detailed JSON health endpoint
	http.HandleFunc("/health/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		healthData := healthService.GetHealthData()
		jsonData, err := json.MarshalIndent(healthData, "", "  ")
		if err != nil {
			http.Error(w, "Failed to generate JSON", http.StatusInternalServerError)
			return
		}
		w.Write(jsonData)
	})

	// Rendered chart of the last collected layout
	http.HandleFunc("/chart", func(w http.ResponseWriter, r *http.Request) {
		result, _, lastErr := c.Last()
		if result == nil {
			msg := "No layout collected yet"
			if lastErr != nil {
				msg = fmt.Sprintf("Layout collection failed: %v", lastErr)
			}
			http.Error(w, msg, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		if err := chart.Render(w, result); err != nil {
			log.Printf("Chart render failed: %v", err)
		}
	})
}
