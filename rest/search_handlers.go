package rest

import (
	"fmt"
	"net/http"

	"content-indexer/domain"
	"content-indexer/usecase"

	"github.com/labstack/echo/v4"
)

// Search serves both GET ?q= and POST {query}.
func (h *Handler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if len(req.Query) > h.maxQueryLength {
		return fmt.Errorf("%w: query must be at most %d characters", domain.ErrInvalidRequest, h.maxQueryLength)
	}

	limit := req.Limit
	if limit == 0 {
		limit = h.defaultLimit
	}
	limit = min(limit, h.maxLimit)

	res, err := h.search.Execute(c.Request().Context(), req.Query, domain.SearchFilters{
		ContentType: usecase.NormalizeFilter(req.ContentType),
		Locale:      usecase.NormalizeFilter(req.Locale),
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Success: true,
		Query:   res.Query,
		Entries: res.Entries,
		Stats:   res.Stats,
	})
}
