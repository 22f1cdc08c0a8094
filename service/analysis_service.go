package service

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/tmercier/payslip-anomaly-api/dto"
	"github.com/tmercier/payslip-anomaly-api/utils"
)

// A page yielding fewer words than this is likely a scanned image
// rather than a text layer.
const lowTextWordThreshold = 10

// OCRClient recognizes text from an image file. Nil disables the
// scanned-page fallback; the low-text warning is emitted either way.
type OCRClient interface {
	ExtractText(filePath string) (string, error)
}

type AnalysisService struct {
	pdfProcessor PDFProcessor
	ocrClient    OCRClient
	paramsStore  *ParamsStore
}

func NewAnalysisService(pdfProcessor PDFProcessor, ocrClient OCRClient, paramsStore *ParamsStore) *AnalysisService {
	return &AnalysisService{
		pdfProcessor: pdfProcessor,
		ocrClient:    ocrClient,
		paramsStore:  paramsStore,
	}
}

// AnalyzePayslip runs one full analysis over a payslip document:
// extraction, line grouping, field matching, then the anomaly rules.
// It either returns a complete report or a classified error; fields
// that cannot be extracted are not errors, they surface as anomalies.
func (s *AnalysisService) AnalyzePayslip(pdfData []byte) (*dto.PayslipAnalysis, error) {
	words, pageCount, err := s.pdfProcessor.ExtractWords(pdfData)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", dto.ErrExtraction, err)
	}

	lines := utils.GroupWordsIntoLines(words)

	warnings, ocrLines := s.handleLowTextPages(pdfData, words, pageCount)
	lines = append(lines, ocrLines...)

	data := utils.ExtractPayslipData(lines)

	// One snapshot for the whole run; a concurrent params update never
	// affects an in-flight analysis.
	params := s.paramsStore.Load()

	anomalies, err := s.evaluateRules(data, params)
	if err != nil {
		return nil, err
	}

	status := dto.StatusOK
	if len(anomalies) > 0 {
		status = dto.StatusAnomalies
	}

	analysis := &dto.PayslipAnalysis{
		AnalysisID:    uuid.NewString(),
		Status:        status,
		Anomalies:     anomalies,
		ExtractedData: data,
		Warnings:      warnings,
	}

	log.Printf("Analysis %s done: status=%s anomalies=%d warnings=%d",
		analysis.AnalysisID, status, len(anomalies), len(warnings))

	return analysis, nil
}

// evaluateRules isolates rule evaluation faults from extraction
// faults, so callers can tell "could not read the document" apart from
// "could not reason about its contents".
func (s *AnalysisService) evaluateRules(data dto.PayslipData, params dto.RGDUParams) (anomalies []dto.Anomaly, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", dto.ErrRuleEvaluation, r)
		}
	}()

	anomalies = CheckRules(data, params)
	if anomalies == nil {
		anomalies = []dto.Anomaly{}
	}
	return anomalies, nil
}

// handleLowTextPages flags pages with too few word tokens and, when an
// OCR client is configured, recovers their text from embedded images.
// OCR lines carry a page reference but no geometry.
func (s *AnalysisService) handleLowTextPages(pdfData []byte, words []dto.WordToken, pageCount int) ([]string, []dto.Line) {
	wordsPerPage := make(map[int]int)
	for _, w := range words {
		wordsPerPage[w.Page]++
	}

	lowText := make(map[int]bool)
	var warnings []string
	for page := 1; page <= pageCount; page++ {
		if wordsPerPage[page] < lowTextWordThreshold {
			lowText[page] = true
			warnings = append(warnings, fmt.Sprintf("low_text_extraction_page_%d", page))
		}
	}

	if len(lowText) == 0 || s.ocrClient == nil {
		return warnings, nil
	}

	images, err := s.pdfProcessor.ExtractImages(pdfData)
	if err != nil {
		log.Printf("Image extraction for OCR fallback failed: %v", err)
		warnings = append(warnings, "ocr_image_extraction_failed")
		return warnings, nil
	}

	var ocrLines []dto.Line
	for _, pageImage := range images {
		if !lowText[pageImage.Page] {
			continue
		}

		tempFile, err := saveImageToTempFile(pageImage.Image)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		text, err := s.ocrClient.ExtractText(tempFile)
		os.Remove(tempFile)
		if err != nil {
			log.Printf("OCR failed for page %d: %v", pageImage.Page, err)
			warnings = append(warnings, fmt.Sprintf("ocr_failed_page_%d", pageImage.Page))
			continue
		}

		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			ocrLines = append(ocrLines, dto.Line{Page: pageImage.Page, Text: line})
		}
	}

	return warnings, ocrLines
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
