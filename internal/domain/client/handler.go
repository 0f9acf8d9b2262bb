package client

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/caretrack/caretrack/internal/domain/adherence"
	"github.com/caretrack/caretrack/internal/platform/auth"
	"github.com/caretrack/caretrack/pkg/apperr"
	"github.com/caretrack/caretrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleClinician, auth.RoleTracker))
	read.GET("/facilities/:fid/clients", h.ListClients)
	read.GET("/facilities/:fid/notifications", h.NotificationFeed)
	read.GET("/facilities/:fid/summary", h.FacilitySummary)
	read.GET("/clients/:id", h.GetClient)
	read.GET("/clients/:id/escalation", h.ClientEscalation)
	read.GET("/clients/:id/outreach", h.OutreachHistory)

	write := api.Group("", auth.RequireRole(auth.RoleClinician))
	write.POST("/facilities/:fid/clients", h.CreateClient)
	write.PUT("/clients/:id", h.UpdateClient)
	write.DELETE("/clients/:id", h.DeleteClient)
	write.POST("/clients/:id/status", h.TransitionStatus)

	// Trackers record outreach from the field.
	outreach := api.Group("", auth.RequireRole(auth.RoleClinician, auth.RoleTracker))
	outreach.POST("/clients/:id/outreach", h.RecordOutreach)
}

func httpError(err error) error {
	switch {
	case apperr.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperr.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) CreateClient(c echo.Context) error {
	fid, err := uuid.Parse(c.Param("fid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	var cl Client
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cl.FacilityID = fid
	if err := h.svc.CreateClient(c.Request().Context(), &cl); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, &cl)
}

func (h *Handler) GetClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cl, err := h.svc.GetClient(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cl)
}

// ListClients serves a facility's register. Without query parameters it is a
// paginated listing; ?window= filters to a due-date window and ?q= runs a
// substring search. Window and search results are computed over the full
// register and returned unpaginated, matching how the dashboards consume
// them.
func (h *Handler) ListClients(c echo.Context) error {
	fid, err := uuid.Parse(c.Param("fid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	ctx := c.Request().Context()

	if ws := c.QueryParam("window"); ws != "" {
		w, ok := adherence.ParseWindow(ws)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown window: "+ws)
		}
		items, err := h.svc.ClientsInWindow(ctx, fid, w)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"data": items, "total": len(items)})
	}

	if q := c.QueryParam("q"); q != "" {
		items, err := h.svc.SearchClients(ctx, fid, q)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"data": items, "total": len(items)})
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListClients(ctx, fid, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cl Client
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cl.ID = id
	if err := h.svc.UpdateClient(c.Request().Context(), &cl); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, &cl)
}

func (h *Handler) DeleteClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteClient(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type statusRequest struct {
	Status  Status `json:"status"`
	Details string `json:"details"`
}

func (h *Handler) TransitionStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cl, err := h.svc.TransitionStatus(c.Request().Context(), id, req.Status, req.Details)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cl)
}

type outreachRequest struct {
	Intervention string `json:"intervention"`
	Finding      string `json:"finding"`
}

func (h *Handler) RecordOutreach(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req outreachRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	tracker := auth.UserIDFromContext(c.Request().Context())
	rec, err := h.svc.RecordOutreach(c.Request().Context(), id, req.Intervention, req.Finding, tracker)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) OutreachHistory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.OutreachHistory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ClientEscalation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	esc, err := h.svc.ClientEscalation(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, esc)
}

func (h *Handler) NotificationFeed(c echo.Context) error {
	fid, err := uuid.Parse(c.Param("fid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	items, err := h.svc.NotificationFeed(c.Request().Context(), fid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": items, "total": len(items)})
}

func (h *Handler) FacilitySummary(c echo.Context) error {
	fid, err := uuid.Parse(c.Param("fid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	summary, err := h.svc.FacilitySummary(c.Request().Context(), fid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
