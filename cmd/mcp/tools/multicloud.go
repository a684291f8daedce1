package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yugabyte/cloud-resource-cleanup/cmd/mcp/response"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
	gcpcompute "github.com/yugabyte/cloud-resource-cleanup/service/gcp/compute"
	gcpconfig "github.com/yugabyte/cloud-resource-cleanup/service/gcp/config"
)

// RegisterMultiCloudTools registers tools that span all configured providers
func RegisterMultiCloudTools(s *server.MCPServer, gcpProjectID string, hasAzure bool) {
	s.AddTool(
		mcp.NewTool("multicloud_get_inventory_summary",
			mcp.WithDescription("Count cleanable resources per provider and kind across all configured clouds (AWS, Azure, GCP)"),
		),
		makeInventorySummaryHandler(gcpProjectID, hasAzure),
	)
}

func makeInventorySummaryHandler(gcpProjectID string, hasAzure bool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		builders := map[string]serviceBuilder{
			"aws": buildAWS,
		}
		if hasAzure {
			builders["azure"] = buildAzure
		}
		if gcpProjectID != "" {
			builders["gcp"] = func(ctx context.Context) (svc.ResourceService, error) {
				return gcpcompute.NewService(ctx, gcpconfig.NewService(gcpProjectID))
			}
		}

		summary := response.InventorySummary{}
		for _, name := range []string{"aws", "azure", "gcp"} {
			build, ok := builders[name]
			if !ok {
				continue
			}
			summary.Providers = append(summary.Providers, inventoryFor(ctx, name, build))
		}

		return toolJSON(summary)
	}
}

func inventoryFor(ctx context.Context, name string, build serviceBuilder) response.ProviderInventory {
	inventory := response.ProviderInventory{
		Provider: name,
		Counts:   map[string]int{},
	}

	resources, err := build(ctx)
	if err != nil {
		inventory.Error = err.Error()
		return inventory
	}

	for _, kind := range resources.Kinds() {
		records, err := resources.List(ctx, kind)
		if err != nil {
			inventory.Error = err.Error()
			return inventory
		}
		inventory.Counts[string(kind)] = len(records)
	}
	return inventory
}
