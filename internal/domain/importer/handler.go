package importer

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/caretrack/caretrack/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	write := api.Group("", auth.RequireRole(auth.RoleClinician))
	write.POST("/facilities/:fid/import", h.ImportRows)
}

// ImportRows accepts a JSON array of register rows, each an object keyed by
// the source column names. Spreadsheet and CSV decoding happens upstream.
func (h *Handler) ImportRows(c echo.Context) error {
	fid, err := uuid.Parse(c.Param("fid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	var rows []Row
	if err := c.Bind(&rows); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(rows) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no rows to import")
	}
	res := h.svc.ImportRows(c.Request().Context(), fid, rows)
	return c.JSON(http.StatusOK, res)
}
