package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"zwallpaper/internal/application"
	"zwallpaper/internal/application/commands"
	"zwallpaper/internal/domain"
	"zwallpaper/internal/logging"
)

// Service is the part of application.CatalogService the API serves
type Service interface {
	commands.Catalog
	Catalog() *domain.Catalog
	RefreshCatalog(ctx context.Context) (*domain.Catalog, string, error)
	ListCategories() []domain.CategoryCount
	GetThumbnail(ctx context.Context, item domain.CatalogItem) (string, error)
}

type Handler struct {
	svc Service
	log *log.Logger
}

func NewHandler(svc Service, logger *log.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: logging.OrDiscard(logger),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.handleCategories)
	e.GET("/items", h.handleItems)
	e.GET("/thumbnails/*", h.handleThumbnail)
	e.POST("/apply", h.handleApply)
	e.POST("/refresh", h.handleRefresh)
}

type categoryResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type itemResponse struct {
	Path        string `json:"path"`
	FileName    string `json:"fileName"`
	Category    string `json:"category"`
	DisplayName string `json:"displayName"`
	DownloadURL string `json:"downloadUrl"`
	Size        int64  `json:"size,omitempty"`
}

type applyRequest struct {
	Path string `json:"path"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toItemResponses(items []domain.CatalogItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse{
			Path:        item.Path,
			FileName:    item.FileName,
			Category:    item.Category,
			DisplayName: item.DisplayName,
			DownloadURL: item.DownloadURL,
			Size:        item.Size,
		})
	}
	return out
}

func (h *Handler) handleCategories(c echo.Context) error {
	if err := h.ensureCatalog(c.Request().Context()); err != nil {
		return h.errorJSON(c, err)
	}

	counts := h.svc.ListCategories()
	out := make([]categoryResponse, 0, len(counts))
	for _, cc := range counts {
		out = append(out, categoryResponse{Name: cc.Name, Count: cc.Count})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) handleItems(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.ensureCatalog(ctx); err != nil {
		return h.errorJSON(c, err)
	}

	category := c.QueryParam("category")
	query := c.QueryParam("q")

	if query != "" {
		result, err := commands.NewSearchCommand(h.svc, query, category).Execute(ctx)
		if err != nil {
			return h.errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, toItemResponses(result.Items))
	}

	items, err := commands.NewListItemsCommand(h.svc, category).Execute(ctx)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponses(items))
}

func (h *Handler) handleThumbnail(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.ensureCatalog(ctx); err != nil {
		return h.errorJSON(c, err)
	}

	item, err := h.svc.Item(c.Param("*"))
	if err != nil {
		return h.errorJSON(c, err)
	}

	path, err := h.svc.GetThumbnail(ctx, item)
	if err != nil {
		return h.errorJSON(c, err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.File(path)
}

func (h *Handler) handleApply(c echo.Context) error {
	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	ctx := c.Request().Context()
	if err := h.ensureCatalog(ctx); err != nil {
		return h.errorJSON(c, err)
	}

	result, err := commands.NewApplyCommand(h.svc, req.Path).Execute(ctx)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: result.Message})
}

func (h *Handler) handleRefresh(c echo.Context) error {
	_, status, err := h.svc.RefreshCatalog(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: status})
}

func (h *Handler) ensureCatalog(ctx context.Context) error {
	if h.svc.Catalog() != nil {
		return nil
	}
	_, _, err := h.svc.RefreshCatalog(ctx)
	return err
}

func (h *Handler) errorJSON(c echo.Context, err error) error {
	kind := application.ErrorKind(err)
	status := statusCode(kind)
	if status >= http.StatusInternalServerError {
		h.log.Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return c.JSON(status, map[string]string{
		"error": err.Error(),
		"kind":  kind,
	})
}

func statusCode(kind string) int {
	switch kind {
	case "invalid_request":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "no_catalog":
		return http.StatusServiceUnavailable
	case "timeout":
		return http.StatusGatewayTimeout
	case "network", "malformed_response":
		return http.StatusBadGateway
	case "unsupported_platform":
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
