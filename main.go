package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tmercier/payslip-anomaly-api/client"
	"github.com/tmercier/payslip-anomaly-api/config"
	"github.com/tmercier/payslip-anomaly-api/handler"
	"github.com/tmercier/payslip-anomaly-api/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Optional OCR fallback for scanned payslips
	var ocrClient service.OCRClient
	if cfg.OCREnabled {
		tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
		defer tesseractClient.Close()
		ocrClient = tesseractClient
		log.Println("OCR fallback enabled")
	}

	// Initialize PDF processor and params store
	pdfProcessor := service.NewPDFProcessor()
	paramsStore := service.NewParamsStore(cfg.ParamsFile)

	// Initialize service layer
	analysisService := service.NewAnalysisService(pdfProcessor, ocrClient, paramsStore)

	// Initialize handler layer
	analyzeHandler := handler.NewAnalyzeHandler(analysisService)
	paramsHandler := handler.NewParamsHandler(paramsStore)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Payslip Anomaly Detector",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		payslip := api.Group("/payslip")
		{
			payslip.POST("/analyze", analyzeHandler.AnalyzePayslip)
		}
		rgdu := api.Group("/rgdu")
		{
			rgdu.GET("/params", paramsHandler.GetParams)
			rgdu.POST("/params", paramsHandler.SetParams)
		}
	}

	// Start server
	log.Printf("Starting Payslip Anomaly Detector on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
