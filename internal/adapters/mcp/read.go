package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"zwallpaper/internal/application"
	"zwallpaper/internal/application/commands"
	"zwallpaper/internal/domain"
)

// Service is the part of application.CatalogService the tools use
type Service interface {
	commands.Catalog
	Catalog() *domain.Catalog
	RefreshCatalog(ctx context.Context) (*domain.Catalog, string, error)
	ListCategories() []domain.CategoryCount
}

// RegisterReadTools adds all read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc Service) {
	s.AddTool(listCategoriesTool(), listCategoriesHandler(svc))
	s.AddTool(listItemsTool(), listItemsHandler(svc))
	s.AddTool(searchTool(), searchHandler(svc))
}

// ensureCatalog loads the catalog on first use
func ensureCatalog(ctx context.Context, svc Service) error {
	if svc.Catalog() != nil {
		return nil
	}
	_, _, err := svc.RefreshCatalog(ctx)
	return err
}

// --- list_categories ---

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List wallpaper categories with the number of wallpapers in each."),
	)
}

func listCategoriesHandler(svc Service) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ensureCatalog(ctx, svc); err != nil {
			return toolError(err)
		}
		return formatEntities(svc.ListCategories(), formatCategory)
	}
}

// --- list_items ---

func listItemsTool() mcp.Tool {
	return mcp.NewTool("list_items",
		mcp.WithDescription("List wallpapers. Each line is the item path (used by apply_wallpaper and download), its display name and size."),
		mcp.WithString("category",
			mcp.Description("Category name (e.g. nature). Omit or use \"all\" for every wallpaper."),
		),
	)
}

func listItemsHandler(svc Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ensureCatalog(ctx, svc); err != nil {
			return toolError(err)
		}

		items, err := commands.NewListItemsCommand(svc, req.GetString("category", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(items, formatItem)
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search wallpapers by file name (case-insensitive substring)."),
		mcp.WithString("query",
			mcp.Description("Text to look for in file names"),
			mcp.Required(),
		),
		mcp.WithString("category",
			mcp.Description("Restrict the search to one category"),
		),
	)
}

func searchHandler(svc Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ensureCatalog(ctx, svc); err != nil {
			return toolError(err)
		}

		cmd := commands.NewSearchCommand(svc, req.GetString("query", ""), req.GetString("category", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Items) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteString("\n")
		for _, item := range result.Items {
			sb.WriteString(formatItem(item))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(application.StatusMessage(err)), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatCategory(c domain.CategoryCount) string {
	return fmt.Sprintf("%s  %d", c.Name, c.Count)
}

func formatItem(i domain.CatalogItem) string {
	if i.Size > 0 {
		return fmt.Sprintf("%s  %s  %s", i.Path, i.DisplayName, humanSize(i.Size))
	}
	return fmt.Sprintf("%s  %s", i.Path, i.DisplayName)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
