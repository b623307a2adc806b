/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the backend
service, tracking HTTP requests, window lifecycle transitions, terminal
dispatch paths, reasoning service calls and live desktops.

# Usage

	// Create metrics collector on a dedicated registry
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time reasoning calls
	timer := monitoring.NewTimer(metrics, "translate")
	// ... perform call ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
