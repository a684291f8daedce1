package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yugabyte/cloud-resource-cleanup/cmd/mcp/response"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
	azurecompute "github.com/yugabyte/cloud-resource-cleanup/service/azure/compute"
	azureconfig "github.com/yugabyte/cloud-resource-cleanup/service/azure/config"
	azureidentity "github.com/yugabyte/cloud-resource-cleanup/service/azure/identity"
)

// RegisterAzureTools registers all Azure tools with the MCP server
func RegisterAzureTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("azure_get_subscription_info",
			mcp.WithDescription("Get Azure subscription identity information"),
		),
		makeAzureSubscriptionInfoHandler(),
	)

	s.AddTool(
		mcp.NewTool("azure_list_vms",
			mcp.WithDescription("List virtual machines in the configured resource group with tags, creation time, power state and attached disks/interfaces"),
		),
		makeListHandler(buildAzure, model.KindVM),
	)

	s.AddTool(
		mcp.NewTool("azure_list_unattached_disks",
			mcp.WithDescription("List managed disks that are not attached to any VM"),
		),
		makeListHandler(buildAzure, model.KindDisk),
	)

	s.AddTool(
		mcp.NewTool("azure_list_stale_nics",
			mcp.WithDescription("List network interfaces that have no owning VM, typically left behind by failed VM creates"),
		),
		makeListHandler(buildAzure, model.KindNIC),
	)

	s.AddTool(
		mcp.NewTool("azure_list_unused_ips",
			mcp.WithDescription("List public IP addresses that are not associated with any resource"),
		),
		makeListHandler(buildAzure, model.KindIP),
	)

	s.AddTool(
		mcp.NewTool("azure_preview_cleanup",
			append([]mcp.ToolOption{
				mcp.WithDescription("Preview which Azure resources a cleanup run would delete. Dry-run only, nothing is modified."),
			}, previewOptions()...)...,
		),
		makePreviewHandler(buildAzure),
	)
}

func buildAzure(ctx context.Context) (svc.ResourceService, error) {
	configSvc, err := azureconfig.NewService()
	if err != nil {
		return nil, err
	}
	return azurecompute.NewService(configSvc)
}

func makeAzureSubscriptionInfoHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		configSvc, err := azureconfig.NewService()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		identitySvc, err := azureidentity.NewService(configSvc.GetSubscriptionID(), configSvc.GetCredential())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		info, err := identitySvc.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get subscription info: %v", err)), nil
		}

		return toolJSON(response.ConvertAccountInfo(info))
	}
}
