package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/planbeam/solver/pkg/application/services/planning"
	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/infrastructure/config"
	"github.com/planbeam/solver/pkg/infrastructure/logger"
	"github.com/planbeam/solver/pkg/infrastructure/metrics"
	"github.com/planbeam/solver/pkg/infrastructure/validation"
)

// SolveRequest carries the scalar form fields of a solve submission
type SolveRequest struct {
	Horizon       int    `form:"horizon" validate:"min=1,max=3650"`
	StartDate     string `form:"start_date" validate:"omitempty,plan_date"`
	IsConstrained bool   `form:"is_constrained"`
	BuildAhead    bool   `form:"build_ahead"`
}

// SolveHandler serves the solve endpoint
type SolveHandler struct {
	cfg *config.Config
}

// NewSolveHandler creates a solve handler
func NewSolveHandler(cfg *config.Config) *SolveHandler {
	return &SolveHandler{cfg: cfg}
}

// Register wires the handler's routes onto the echo instance
func (h *SolveHandler) Register(e *echo.Echo) {
	e.POST("/solve", h.Solve)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Health reports service liveness
func (h *SolveHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Solve runs one planning computation over the uploaded master data
// and returns the full plan. The run is atomic: invalid input or an
// invalid BOM fails the whole request with no partial result.
func (h *SolveHandler) Solve(c echo.Context) error {
	log := logger.FromContext(c)
	started := time.Now()

	req, err := h.parseRequest(c)
	if err != nil {
		metrics.RecordSolve("rejected", started)
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	form, err := c.MultipartForm()
	if err != nil {
		metrics.RecordSolve("rejected", started)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "multipart form required: " + err.Error()})
	}
	uploads := collectFiles(form)
	if len(uploads) == 0 {
		metrics.RecordSolve("rejected", started)
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "no files uploaded"})
	}

	dataset, err := loadUploads(uploads, h.cfg.Planning.MaxUploadBytes, func(format string, args ...interface{}) {
		log.Sugar().Infof(format, args...)
	})
	if err != nil {
		return h.fail(c, log, started, err)
	}

	year, month, day := started.UTC().Date()
	startDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if req.StartDate != "" {
		startDate, err = time.Parse(entities.DateLayout, req.StartDate)
		if err != nil {
			metrics.RecordSolve("rejected", started)
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{
				"error": "start_date must be a valid YYYY-MM-DD date"})
		}
	}

	policy, err := planning.ParseShortagePolicy(h.cfg.Planning.ShortagePolicy)
	if err != nil {
		policy = planning.ZeroFloor
	}

	planner := planning.NewPlanner(
		dataset.Items, dataset.BOM, dataset.Demands,
		dataset.Suppliers, dataset.Resources, dataset.Stock,
		planning.Config{
			HorizonDays:    req.Horizon,
			StartDate:      startDate,
			Constrained:    req.IsConstrained,
			BuildAhead:     req.BuildAhead,
			BuildAheadDays: h.cfg.Planning.BuildAheadDays,
			ShortagePolicy: policy,
		},
		log,
	)

	result, err := planner.Run(c.Request().Context())
	if err != nil {
		return h.fail(c, log, started, err)
	}

	for _, order := range result.PlannedOrders {
		metrics.RecordPlannedOrder(order.Type.String())
	}
	metrics.RecordSolve("success", started)
	log.Info("Solve completed",
		zap.Int("planned_orders", result.Summary.TotalPlannedOrders),
		zap.Int("shortage_buckets", result.Summary.ShortageCount),
		zap.Duration("took", time.Since(started)))

	return c.JSON(http.StatusOK, result)
}

func (h *SolveHandler) parseRequest(c echo.Context) (*SolveRequest, error) {
	req := &SolveRequest{
		Horizon:       h.cfg.Planning.DefaultHorizonDays,
		IsConstrained: true,
		BuildAhead:    true,
	}

	if v := c.FormValue("horizon"); v != "" {
		horizon, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("horizon must be an integer")
		}
		req.Horizon = horizon
	}
	req.StartDate = c.FormValue("start_date")
	if v := c.FormValue("is_constrained"); v != "" {
		req.IsConstrained = parseBool(v, true)
	}
	if v := c.FormValue("build_ahead"); v != "" {
		req.BuildAhead = parseBool(v, true)
	}

	if failures := validation.ValidateStruct(req); len(failures) > 0 {
		return nil, errors.New(validation.Describe(failures))
	}
	return req, nil
}

func (h *SolveHandler) fail(c echo.Context, log *zap.Logger, started time.Time, err error) error {
	if errors.Is(err, entities.ErrInvalidInput) || errors.Is(err, entities.ErrInvalidBOM) {
		log.Warn("Solve rejected", zap.Error(err))
		metrics.RecordSolve("invalid", started)
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	log.Error("Solve failed", zap.Error(err))
	metrics.RecordSolve("error", started)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
