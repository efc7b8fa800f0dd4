package advice

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lukman/internal/dto"
	"github.com/lshigami/Lukman/internal/middleware"
	"github.com/lshigami/Lukman/internal/service"
	"github.com/rs/zerolog/log"
)

type AdviceController struct {
	adviceService service.AdviceService
}

func NewAdviceController(adviceService service.AdviceService) *AdviceController {
	return &AdviceController{adviceService: adviceService}
}

func (c *AdviceController) RegisterRoutes(router gin.IRouter) {
	router.POST("/advice", c.GetAdvice)
}

// GetAdvice godoc
// @Summary Get medical advice
// @Description Sends the question to Gemini and returns the advice with a fixed disclaimer. The pair is stored for the history endpoints.
// @Tags Advice
// @Accept json
// @Produce json
// @Param request body dto.AdviceRequest true "Question with optional age and gender"
// @Success 200 {object} dto.AdviceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or the question was rejected"
// @Failure 500 {object} dto.ErrorResponse "Empty answer or storage error"
// @Failure 503 {object} dto.ErrorResponse "Gemini unavailable"
// @Router /advice [post]
func (c *AdviceController) GetAdvice(ctx *gin.Context) {
	var req dto.AdviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Message: service.MsgInvalidInput})
			return
		}
		log.Warn().Err(err).Str("request_id", middleware.GetRequestID(ctx)).Msg("GetAdvice: invalid request body")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: service.MsgInvalidInput, Details: []string{err.Error()}})
		return
	}

	resp, err := c.adviceService.GetAdvice(ctx.Request.Context(), req)
	if err != nil {
		status, body := errorResponse(err)
		log.Error().Err(err).Str("request_id", middleware.GetRequestID(ctx)).Int("status", status).Msg("GetAdvice: request failed")
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var gerr *service.GenerationError
	if errors.As(err, &gerr) {
		switch gerr.Kind {
		case service.KindRejected:
			return http.StatusBadRequest, dto.ErrorResponse{Message: service.MsgRephrase, Details: []string{gerr.Hint()}}
		case service.KindEmpty:
			return http.StatusInternalServerError, dto.ErrorResponse{Message: service.MsgEmptyAnswer}
		default:
			return http.StatusServiceUnavailable, dto.ErrorResponse{Message: service.MsgUnavailable}
		}
	}
	if errors.Is(err, service.ErrProviderUnavailable) {
		return http.StatusServiceUnavailable, dto.ErrorResponse{Message: service.MsgUnavailable}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{Message: service.MsgInternal}
}
