package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yugabyte/cloud-resource-cleanup/cmd/mcp/response"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
	awsconfig "github.com/yugabyte/cloud-resource-cleanup/service/aws/config"
	awsec2 "github.com/yugabyte/cloud-resource-cleanup/service/aws/ec2"
	awssts "github.com/yugabyte/cloud-resource-cleanup/service/aws/sts"
)

// RegisterAWSTools registers all AWS tools with the MCP server
func RegisterAWSTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("aws_get_account_info",
			mcp.WithDescription("Get AWS account identity information including account ID and ARN"),
		),
		makeAWSAccountInfoHandler(),
	)

	s.AddTool(
		mcp.NewTool("aws_list_vms",
			mcp.WithDescription("List EC2 instances across all enabled regions with tags, launch time, state and attached volumes/interfaces"),
		),
		makeListHandler(buildAWS, model.KindVM),
	)

	s.AddTool(
		mcp.NewTool("aws_list_unused_ips",
			mcp.WithDescription("List Elastic IP addresses that are not associated with any resource"),
		),
		makeListHandler(buildAWS, model.KindIP),
	)

	s.AddTool(
		mcp.NewTool("aws_list_key_pairs",
			mcp.WithDescription("List EC2 key pairs across all enabled regions"),
		),
		makeListHandler(buildAWS, model.KindKeypair),
	)

	s.AddTool(
		mcp.NewTool("aws_preview_cleanup",
			append([]mcp.ToolOption{
				mcp.WithDescription("Preview which AWS resources a cleanup run would delete. Dry-run only, nothing is modified."),
			}, previewOptions()...)...,
		),
		makePreviewHandler(buildAWS),
	)
}

func buildAWS(ctx context.Context) (svc.ResourceService, error) {
	return awsec2.NewService(awsconfig.NewService()), nil
}

func makeAWSAccountInfoHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		configSvc := awsconfig.NewService()
		awsCfg, err := configSvc.GetAWSCfg(ctx, "us-east-1")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		stsSvc := awssts.NewService(awsCfg)
		info, err := stsSvc.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get account info: %v", err)), nil
		}

		return toolJSON(response.ConvertAccountInfo(info))
	}
}
