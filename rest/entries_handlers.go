package rest

import (
	"fmt"
	"net/http"

	"content-indexer/usecase"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListEntries(c echo.Context) error {
	var q EntriesQuery
	if err := c.Bind(&q); err != nil {
		return err
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	return h.respondList(c, usecase.ListFilter{ContentType: q.ContentType, Locale: q.Locale})
}

// ListEntriesAction is the POST form; "list" is the only action.
func (h *Handler) ListEntriesAction(c echo.Context) error {
	var req EntriesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return h.respondList(c, usecase.ListFilter{ContentType: req.ContentType, Locale: req.Locale})
}

func (h *Handler) respondList(c echo.Context, filter usecase.ListFilter) error {
	res := h.list.Execute(c.Request().Context(), filter)
	return c.JSON(http.StatusOK, EntriesResponse{
		Success: true,
		Message: listMessage(res),
		Entries: res.Entries,
		Stats:   res.Stats,
	})
}

func listMessage(res *usecase.ListResult) string {
	switch res.Dimension {
	case "contentType":
		return fmt.Sprintf("Found %d entries for content type %s", len(res.Entries), res.Value)
	case "locale":
		return fmt.Sprintf("Found %d entries for locale %s", len(res.Entries), res.Value)
	default:
		return fmt.Sprintf("Found %d entries", len(res.Entries))
	}
}
