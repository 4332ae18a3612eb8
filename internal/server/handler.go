// Package server exposes simulations over HTTP: a health endpoint and
// a JSON simulate endpoint that runs the engine synchronously.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/san-kum/heliosim/internal/integrators"
	"github.com/san-kum/heliosim/internal/logger"
	"github.com/san-kum/heliosim/internal/metrics"
	"github.com/san-kum/heliosim/internal/sim"
	"github.com/san-kum/heliosim/internal/weather"
)

// Handler wires the HTTP layer to the engine and logging.
type Handler struct {
	log *logger.Logger
}

func NewHandler(log *logger.Logger) *Handler {
	return &Handler{log: log}
}

// InitRoutes builds the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", h.health)

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", h.simulate)
	}

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) simulate(c *gin.Context) {
	req := defaultRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	stepper, err := integrators.ForName(req.Solver)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	bundle := req.bundle()
	if err := bundle.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if _, err := sim.Steps(bundle.Simulation); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	source, err := weather.NewSynthetic(req.weatherConfig())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := sim.New(bundle, source, stepper).Run()
	if err != nil {
		h.log.Errorw("simulation failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "simulation failed: " + err.Error()})
		return
	}

	h.log.Infow("simulation complete",
		"solver", stepper.Name(),
		"steps", result.Len()-1,
		"final_tank_k", result.TankTemperatureK[result.Len()-1],
	)

	c.JSON(http.StatusOK, simulateResponse{
		TimesS:              result.TimesS,
		TankTemperatureK:    result.TankTemperatureK,
		AmbientTemperatureK: result.AmbientTemperatureK,
		IrradianceWM2:       result.IrradianceWM2,
		PumpOn:              result.PumpOn,
		Metrics:             metrics.Summarize(result, bundle.Tank),
	})
}
