package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-drone-fleet/internal/events"
	"github.com/mr1hm/go-drone-fleet/internal/models"
	"github.com/mr1hm/go-drone-fleet/internal/service"
)

type ReportService interface {
	MissionPerformance(ctx context.Context) ([]models.MissionPerformanceRow, error)
	AvailablePersonnel(ctx context.Context) ([]models.AvailableOperatorRow, error)
	MaintenanceDrones(ctx context.Context) ([]models.MaintenanceDroneRow, error)
	OngoingResources(ctx context.Context) ([]models.OngoingResourceRow, error)
	PayloadTiers(ctx context.Context) ([]models.PayloadTierRow, error)
	Overview(ctx context.Context) (*models.Overview, error)

	ListDisasters(ctx context.Context) ([]models.DisasterOption, error)
	ListDrones(ctx context.Context) ([]models.DroneOption, error)
	ListOperators(ctx context.Context) ([]models.OperatorOption, error)
	ListMissions(ctx context.Context) ([]models.MissionOption, error)
	ListAppUsers(ctx context.Context) ([]models.AppUserRow, error)
}

type MutationService interface {
	AddDisaster(ctx context.Context, in service.DisasterInput) error
	AddDrone(ctx context.Context, in service.DroneInput) error
	AddOperator(ctx context.Context, in service.OperatorInput) error
	AddMission(ctx context.Context, in service.MissionInput) error
	AddAlert(ctx context.Context, in service.AlertInput) error
	AssignOperator(ctx context.Context, in service.AssignmentInput) error
	ResolveDisaster(ctx context.Context, id string) error
	DeleteDisaster(ctx context.Context, id string) error
	UpsertAppUser(ctx context.Context, in service.AppUserInput) error
}

type Handler struct {
	reports     ReportService
	mutations   MutationService
	broadcaster *events.Broadcaster
}

func NewHandler(reports ReportService, mutations MutationService, broadcaster *events.Broadcaster) *Handler {
	return &Handler{
		reports:     reports,
		mutations:   mutations,
		broadcaster: broadcaster,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")

	api.GET("/list/disasters", list(h.reports.ListDisasters))
	api.GET("/list/drones", list(h.reports.ListDrones))
	api.GET("/list/operators", list(h.reports.ListOperators))
	api.GET("/list/missions", list(h.reports.ListMissions))

	api.GET("/overview", h.overview)
	api.GET("/query1", list(h.reports.MissionPerformance))
	api.GET("/query2", list(h.reports.AvailablePersonnel))
	api.GET("/query3", list(h.reports.MaintenanceDrones))
	api.GET("/query4", list(h.reports.OngoingResources))
	api.GET("/query5", list(h.reports.PayloadTiers))

	api.POST("/add-disaster", mutate(h.mutations.AddDisaster, "Disaster added successfully"))
	api.POST("/add-drone", mutate(h.mutations.AddDrone, "Drone added successfully"))
	api.POST("/add-operator", mutate(h.mutations.AddOperator, "Operator added successfully"))
	api.POST("/add-mission", mutate(h.mutations.AddMission, "Mission report added successfully"))
	api.POST("/add-alert", mutate(h.mutations.AddAlert, "Alert added successfully"))
	api.POST("/assign-operator", mutate(h.mutations.AssignOperator, "Operator assigned successfully"))
	api.POST("/resolve-disaster", h.resolveDisaster)
	api.POST("/delete-disaster", h.deleteDisaster)

	api.POST("/app-users/create", mutate(h.mutations.UpsertAppUser, "User saved successfully"))
	api.GET("/app-users", list(h.reports.ListAppUsers))

	if h.broadcaster != nil {
		api.GET("/events", h.streamEvents)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// list adapts a read that returns rows into a handler serving them as a
// JSON array.
func list[T any](fetch func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := fetch(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if rows == nil {
			rows = []T{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

// mutate binds the JSON body into I and reports success with msg.
func mutate[I any](apply func(context.Context, I) error, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in I
		if !bindJSON(c, &in) {
			return
		}
		if err := apply(c.Request.Context(), in); err != nil {
			writeError(c, err)
			return
		}
		writeSuccess(c, msg)
	}
}

func (h *Handler) overview(c *gin.Context) {
	ov, err := h.reports.Overview(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

type idRequest struct {
	ID string `json:"id"`
}

func (h *Handler) resolveDisaster(c *gin.Context) {
	var req idRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.mutations.ResolveDisaster(c.Request.Context(), req.ID); err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, "Disaster marked as resolved")
}

func (h *Handler) deleteDisaster(c *gin.Context) {
	var req idRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.mutations.DeleteDisaster(c.Request.Context(), req.ID); err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, "Disaster deleted successfully")
}
