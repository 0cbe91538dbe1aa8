package client_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/safeguardx/safeguardx/pkg/client"
)

// Example demonstrates basic usage of the SafeGuard X client
func Example() {
	// Create a new client
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8000",
	})

	ctx := context.Background()

	// Submit a log event for analysis
	result, err := c.Threats().Analyze(ctx, client.AnalyzeRequest{
		Source:  "auth-server-01",
		Level:   "ERROR",
		Message: "Multiple failed login attempts detected",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Anomaly score: %.2f\n", result.AnomalyScore)
	if result.ThreatDetected {
		fmt.Printf("Threat: %s (%s)\n", result.Threat.Category, result.Threat.Severity)
	}
}

// ExampleThreatService_ListActive demonstrates listing active threats
func ExampleThreatService_ListActive() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8000",
	})

	active, err := c.Threats().ListActive(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Active threats: %d\n", active.Count)
	for _, t := range active.Threats {
		fmt.Printf("  - #%d %s from %s (%s)\n", t.ID, t.Category, t.Source, t.Severity)
	}
}

// ExampleThreatService_Respond demonstrates triggering incident response
func ExampleThreatService_Respond() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8000",
	})

	resp, err := c.Threats().Respond(context.Background(), 1, "contain")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %s\n", resp.Status, resp.Message)
}

// ExampleAlertService_List demonstrates listing unread alerts
func ExampleAlertService_List() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8000",
	})

	alerts, err := c.Alerts().List(context.Background(), true)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Unread alerts: %d\n", alerts.UnreadCount)
	for _, a := range alerts.Alerts {
		fmt.Printf("  - [%s] %s\n", a.Severity, a.Message)
	}
}

// ExampleDashboardService_Metrics demonstrates fetching dashboard metrics
func ExampleDashboardService_Metrics() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8000",
	})

	metrics, err := c.Dashboard().Metrics(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Active threats: %d (critical: %d)\n",
		metrics.ActiveThreats, metrics.ThreatLevels.Critical)
	fmt.Printf("System status: %s\n", metrics.SystemStatus)
}

// ExampleScanService_ScanFile demonstrates scanning a file
func ExampleScanService_ScanFile() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8000",
	})

	result, err := c.Scans().ScanFile(context.Background(), "invoice.pdf",
		strings.NewReader("file contents"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("SHA-256: %s\n", result.FileHash)
	fmt.Printf("Threat level: %s\n", result.ThreatLevel)
}

// ExampleHealthService_Check demonstrates checking API health
func ExampleHealthService_Check() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8000",
	})

	health, err := c.Health().Check(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("API Status: %s\n", health.Status)
	fmt.Printf("Version: %s\n", health.Version)
}
