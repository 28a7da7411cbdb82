package commands

import (
	"context"
	"fmt"
	"strings"

	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
)

// SearchResult holds the matches of a search and a summary line
type SearchResult struct {
	Items   []domain.CatalogItem
	Message string
}

// SearchCommand filters the catalog by file name
type SearchCommand struct {
	catalog  Catalog
	Query    string
	Category string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(catalog Catalog, query, category string) *SearchCommand {
	return &SearchCommand{
		catalog:  catalog,
		Query:    query,
		Category: category,
	}
}

// Validate checks the search has a query
func (c *SearchCommand) Validate() error {
	return application.ValidateRequired("query", c.Query)
}

// Execute runs the search. Matches keep catalog order.
func (c *SearchCommand) Execute(ctx context.Context) (*SearchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	items := c.catalog.Search(strings.TrimSpace(c.Query), c.Category)

	scope := "all categories"
	if c.Category != "" && c.Category != domain.AllCategories {
		scope = domain.CategoryTitle(c.Category)
	}
	return &SearchResult{
		Items:   items,
		Message: fmt.Sprintf("%d matches for %q in %s", len(items), c.Query, scope),
	}, nil
}
