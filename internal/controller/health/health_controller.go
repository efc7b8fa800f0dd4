package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lukman/database"
	"github.com/lshigami/Lukman/internal/dto"
	"github.com/lshigami/Lukman/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	StatusRunning  = "işleýär"
	StatusHealthy  = "sagdyn"
	StatusDegraded = "ýalňyş"

	pingTimeout = 2 * time.Second
)

type HealthController struct {
	adviceService service.AdviceService
	db            *gorm.DB
}

func NewHealthController(adviceService service.AdviceService, db *gorm.DB) *HealthController {
	return &HealthController{adviceService: adviceService, db: db}
}

func (c *HealthController) RegisterRoutes(router gin.IRouter) {
	router.GET("/", c.Root)
	router.GET("/health", c.Health)
}

// Root godoc
// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthStatus
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthStatus{
		Status:          StatusRunning,
		Message:         "Türkmen Lukmançylyk Maslahat API işleýär",
		GeminiConnected: c.adviceService.Available(),
	})
}

// Health godoc
// @Summary Health check
// @Description Reports whether Gemini is configured and the database answers a ping. Always 200; degraded state is in the body.
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthStatus
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
	defer cancel()

	dbOK := true
	if err := database.Ping(pingCtx, c.db); err != nil {
		log.Warn().Err(err).Msg("Health: database ping failed")
		dbOK = false
	}
	geminiOK := c.adviceService.Available()

	resp := dto.HealthStatus{
		Status:            StatusHealthy,
		Message:           "Ähli hyzmatlar işleýär",
		GeminiConnected:   geminiOK,
		DatabaseConnected: &dbOK,
	}
	if !geminiOK || !dbOK {
		resp.Status = StatusDegraded
		resp.Message = "Hyzmat birikdirilmedi"
	}
	ctx.JSON(http.StatusOK, resp)
}
