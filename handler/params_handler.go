package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmercier/payslip-anomaly-api/dto"
	"github.com/tmercier/payslip-anomaly-api/service"
)

type ParamsHandler struct {
	paramsStore *service.ParamsStore
}

func NewParamsHandler(paramsStore *service.ParamsStore) *ParamsHandler {
	return &ParamsHandler{
		paramsStore: paramsStore,
	}
}

// GetParams handles the GET /rgdu/params endpoint
func (h *ParamsHandler) GetParams(c *gin.Context) {
	c.JSON(http.StatusOK, h.paramsStore.Load())
}

// SetParams handles the POST /rgdu/params endpoint. Parameters are
// replaced as a whole value, no partial updates.
func (h *ParamsHandler) SetParams(c *gin.Context) {
	var params dto.RGDUParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "INVALID_PARAMS",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if params.SmicMensuel <= 0 || params.HeuresContractuelles <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "INVALID_PARAMS",
			Message: "smic_mensuel and heures_contractuelles must be positive",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if err := h.paramsStore.Save(params); err != nil {
		log.Printf("Error: failed to save RGDU params - %v", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "PARAMS_SAVE_FAILED",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, params)
}
