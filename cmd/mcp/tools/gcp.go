package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yugabyte/cloud-resource-cleanup/cmd/mcp/response"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
	gcpcompute "github.com/yugabyte/cloud-resource-cleanup/service/gcp/compute"
	gcpconfig "github.com/yugabyte/cloud-resource-cleanup/service/gcp/config"
	gcpidentity "github.com/yugabyte/cloud-resource-cleanup/service/gcp/identity"
)

// RegisterGCPTools registers all GCP tools with the MCP server
func RegisterGCPTools(s *server.MCPServer, projectID string) {
	buildGCP := func(ctx context.Context) (svc.ResourceService, error) {
		return gcpcompute.NewService(ctx, gcpconfig.NewService(projectID))
	}

	s.AddTool(
		mcp.NewTool("gcp_get_project_info",
			mcp.WithDescription("Get GCP project identity information"),
		),
		makeGCPProjectInfoHandler(projectID),
	)

	s.AddTool(
		mcp.NewTool("gcp_list_vms",
			mcp.WithDescription("List Compute Engine instances across all zones with labels, creation time, status and attached disks"),
		),
		makeListHandler(buildGCP, model.KindVM),
	)

	s.AddTool(
		mcp.NewTool("gcp_list_unattached_disks",
			mcp.WithDescription("List persistent disks that are not attached to any instance"),
		),
		makeListHandler(buildGCP, model.KindDisk),
	)

	s.AddTool(
		mcp.NewTool("gcp_list_reserved_ips",
			mcp.WithDescription("List static addresses, regional and global, that are reserved but not in use"),
		),
		makeListHandler(buildGCP, model.KindIP),
	)

	s.AddTool(
		mcp.NewTool("gcp_preview_cleanup",
			append([]mcp.ToolOption{
				mcp.WithDescription("Preview which GCP resources a cleanup run would delete. Dry-run only, nothing is modified."),
			}, previewOptions()...)...,
		),
		makePreviewHandler(buildGCP),
	)
}

func makeGCPProjectInfoHandler(projectID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identitySvc, err := gcpidentity.NewService(ctx, gcpconfig.NewService(projectID))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure GCP: %v", err)), nil
		}

		info, err := identitySvc.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get project info: %v", err)), nil
		}

		return toolJSON(response.ConvertAccountInfo(info))
	}
}
