package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yugabyte/cloud-resource-cleanup/cmd/mcp/response"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
	"github.com/yugabyte/cloud-resource-cleanup/service/filter"
	"github.com/yugabyte/cloud-resource-cleanup/service/orchestrator"
)

type serviceBuilder func(ctx context.Context) (svc.ResourceService, error)

func toolJSON(value any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// makeListHandler builds a read-only inventory handler for one resource kind
func makeListHandler(build serviceBuilder, kind model.ResourceKind) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resources, err := build(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure provider: %v", err)), nil
		}

		records, err := resources.List(ctx, kind)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list %s resources: %v", kind, err)), nil
		}

		return toolJSON(response.ConvertRecords(resources.Provider(), kind, records))
	}
}

// previewOptions declares the filter parameters shared by the preview tools
func previewOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("resource", mcp.Description("Resource kind to preview: vm, disk, nic, ip or keypair (default vm)")),
		mcp.WithString("filter_tags", mcp.Description(`JSON map of tags a resource must carry to match, e.g. {"test_task": ["test"]}`)),
		mcp.WithString("exception_tags", mcp.Description("JSON map of tags that exempt a resource")),
		mcp.WithString("notags", mcp.Description("JSON map of tag groups; resources carrying every group are excluded")),
		mcp.WithString("name_regex", mcp.Description("JSON list of name patterns for untagged resources")),
		mcp.WithString("exception_regex", mcp.Description("JSON list of name patterns that exempt a resource")),
		mcp.WithNumber("age_days", mcp.Description("Only resources strictly older than this many days match")),
	}
}

// makePreviewHandler runs the cleanup pipeline in dry-run mode and reports
// what a real run would delete. Nothing is mutated.
func makePreviewHandler(build serviceBuilder) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resources, err := build(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure provider: %v", err)), nil
		}

		kind := model.ResourceKind(request.GetString("resource", "vm"))
		spec, err := parseSpec(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		orch := orchestrator.NewService(filter.NewService())
		results, err := orch.Run(ctx, resources, kind, model.OperationDelete, spec, true)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to preview cleanup: %v", err)), nil
		}

		return toolJSON(response.ConvertResults(resources.Provider(), kind, model.OperationDelete, results))
	}
}

func parseSpec(request mcp.CallToolRequest) (model.FilterSpec, error) {
	var spec model.FilterSpec

	for _, f := range []struct {
		name string
		dst  *map[string][]string
	}{
		{"filter_tags", &spec.FilterTags},
		{"exception_tags", &spec.ExceptionTags},
		{"notags", &spec.NoTags},
	} {
		value := request.GetString(f.name, "")
		if value == "" {
			continue
		}
		if err := json.Unmarshal([]byte(value), f.dst); err != nil {
			return spec, fmt.Errorf("%s must be a JSON map of string to string list: %v", f.name, err)
		}
	}

	for _, f := range []struct {
		name string
		dst  *[]string
	}{
		{"name_regex", &spec.NameRegex},
		{"exception_regex", &spec.ExceptionRegex},
	} {
		value := request.GetString(f.name, "")
		if value == "" {
			continue
		}
		if err := json.Unmarshal([]byte(value), f.dst); err != nil {
			return spec, fmt.Errorf("%s must be a JSON list of patterns: %v", f.name, err)
		}
		// a typo'd pattern must fail the preview, not silently match nothing
		for _, p := range *f.dst {
			if _, err := regexp.Compile(p); err != nil {
				return spec, fmt.Errorf("%s pattern %q: %v", f.name, p, err)
			}
		}
	}

	if days := request.GetInt("age_days", 0); days > 0 {
		spec.Age = &model.Age{Days: days}
	}
	return spec, nil
}
