package history

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lukman/internal/dto"
	"github.com/lshigami/Lukman/internal/service"
	"github.com/rs/zerolog/log"
)

type HistoryController struct {
	historyService service.HistoryService
}

func NewHistoryController(historyService service.HistoryService) *HistoryController {
	return &HistoryController{historyService: historyService}
}

func (c *HistoryController) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/history")
	group.GET("", c.ListHistory)
	group.GET("/:id", c.GetHistoryItem)
}

// ListHistory godoc
// @Summary List stored questions and answers
// @Description Returns answered questions newest first. limit above 100 is clamped to 100.
// @Tags History
// @Produce json
// @Param limit query int false "Page size (1-100)" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid limit or offset"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /history [get]
func (c *HistoryController) ListHistory(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(service.DefaultHistoryLimit)))
	if err != nil || limit < 1 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: service.MsgInvalidInput, Details: []string{"limit must be a positive integer"}})
		return
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: service.MsgInvalidInput, Details: []string{"offset must be a non-negative integer"}})
		return
	}

	resp, err := c.historyService.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("ListHistory: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: service.MsgHistoryError})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetHistoryItem godoc
// @Summary Get one stored question and answer
// @Tags History
// @Produce json
// @Param id path int true "Query ID"
// @Success 200 {object} dto.HistoryItem
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Query not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /history/{id} [get]
func (c *HistoryController) GetHistoryItem(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: service.MsgInvalidInput, Details: []string{"id must be a positive integer"}})
		return
	}

	item, err := c.historyService.Get(ctx.Request.Context(), uint(id))
	if errors.Is(err, service.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: fmt.Sprintf("ID %d bilen sorag tapylmady", id)})
		return
	}
	if err != nil {
		log.Error().Err(err).Uint64("queryID", id).Msg("GetHistoryItem: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: service.MsgHistoryError})
		return
	}
	ctx.JSON(http.StatusOK, item)
}
