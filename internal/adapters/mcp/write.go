package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"zwallpaper/internal/application/commands"
)

// RegisterWriteTools adds the tools that change local state: the desktop
// background, files on disk, the in-memory catalog.
func RegisterWriteTools(s *server.MCPServer, svc Service) {
	s.AddTool(applyTool(), applyHandler(svc))
	s.AddTool(downloadTool(), downloadHandler(svc))
	s.AddTool(refreshTool(), refreshHandler(svc))
}

// --- apply_wallpaper ---

func applyTool() mcp.Tool {
	return mcp.NewTool("apply_wallpaper",
		mcp.WithDescription("Set a wallpaper as the desktop background. Downloads the full image first if it is not cached."),
		mcp.WithString("path",
			mcp.Description("Item path as listed by list_items (e.g. nature/sunset_4k.jpg)"),
			mcp.Required(),
		),
	)
}

func applyHandler(svc Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ensureCatalog(ctx, svc); err != nil {
			return toolError(err)
		}

		result, err := commands.NewApplyCommand(svc, req.GetString("path", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- download ---

func downloadTool() mcp.Tool {
	return mcp.NewTool("download",
		mcp.WithDescription("Save the full-resolution image to a local directory."),
		mcp.WithString("path",
			mcp.Description("Item path as listed by list_items"),
			mcp.Required(),
		),
		mcp.WithString("destination",
			mcp.Description("Target directory. Defaults to the configured downloads directory."),
		),
	)
}

func downloadHandler(svc Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ensureCatalog(ctx, svc); err != nil {
			return toolError(err)
		}

		cmd := commands.NewDownloadCommand(svc, req.GetString("path", ""), req.GetString("destination", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- refresh ---

func refreshTool() mcp.Tool {
	return mcp.NewTool("refresh",
		mcp.WithDescription("Reload the catalog from the remote collection."),
	)
}

func refreshHandler(svc Service) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, status, err := svc.RefreshCatalog(ctx)
		if err != nil {
			return mcp.NewToolResultError(status), nil
		}
		return mcp.NewToolResultText(status), nil
	}
}
