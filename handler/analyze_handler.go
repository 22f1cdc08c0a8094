package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmercier/payslip-anomaly-api/dto"
	"github.com/tmercier/payslip-anomaly-api/service"
)

type AnalyzeHandler struct {
	analysisService *service.AnalysisService
}

func NewAnalyzeHandler(analysisService *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: analysisService,
	}
}

// AnalyzePayslip handles the POST /payslip/analyze endpoint
func (h *AnalyzeHandler) AnalyzePayslip(c *gin.Context) {
	log.Println("Received payslip analysis request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "A payslip file is required", err)
		return
	}

	request := &dto.AnalyzeRequest{File: fileHeader}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_DOCUMENT", "Invalid file type. Please upload a PDF.", err)
		return
	}

	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" && contentType != "application/pdf" {
		h.sendError(c, http.StatusBadRequest, "INVALID_DOCUMENT", "Invalid file type. Please upload a PDF.", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read uploaded file", err)
		return
	}

	analysis, err := h.analysisService.AnalyzePayslip(pdfData)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrInvalidDocument):
			h.sendError(c, http.StatusBadRequest, "INVALID_DOCUMENT", "The document is not a readable PDF", err)
		case errors.Is(err, dto.ErrExtraction):
			h.sendError(c, http.StatusUnprocessableEntity, "EXTRACTION_FAILED", "Failed to extract text from the document", err)
		default:
			h.sendError(c, http.StatusInternalServerError, "ANALYSIS_FAILED", "Failed to analyze the payslip", err)
		}
		return
	}

	log.Printf("Payslip analysis %s completed: %s", analysis.AnalysisID, analysis.Status)
	c.JSON(http.StatusOK, analysis)
}

// sendError sends a structured error response
func (h *AnalyzeHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
