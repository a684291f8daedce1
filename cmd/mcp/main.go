package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yugabyte/cloud-resource-cleanup/cmd/mcp/tools"
)

func main() {
	_ = godotenv.Load()
	cfg := LoadConfig()

	s := server.NewMCPServer(
		"cloud-resource-cleanup-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools for each provider
	tools.RegisterAWSTools(s)
	if cfg.HasGCP() {
		tools.RegisterGCPTools(s, cfg.GCPProjectID)
	}
	if cfg.HasAzure() {
		tools.RegisterAzureTools(s)
	}
	tools.RegisterMultiCloudTools(s, cfg.GCPProjectID, cfg.HasAzure())

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
