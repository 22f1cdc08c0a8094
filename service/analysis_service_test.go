package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmercier/payslip-anomaly-api/dto"
)

type stubPDFProcessor struct {
	words     []dto.WordToken
	pageCount int
	err       error
}

func (s *stubPDFProcessor) ExtractWords(pdfData []byte) ([]dto.WordToken, int, error) {
	return s.words, s.pageCount, s.err
}

func (s *stubPDFProcessor) ExtractImages(pdfData []byte) ([]PageImage, error) {
	return nil, nil
}

// rowWords lays out one payslip row as word tokens at the given top-y.
func rowWords(page int, y float64, texts ...string) []dto.WordToken {
	words := make([]dto.WordToken, len(texts))
	x := 40.0
	for i, text := range texts {
		width := float64(len(text)) * 6
		words[i] = dto.WordToken{
			Page: page,
			Text: text,
			BBox: dto.BBox{x, y, x + width, y + 10},
		}
		x += width + 8
	}
	return words
}

func coherentPayslipWords() []dto.WordToken {
	var words []dto.WordToken
	words = append(words, rowWords(1, 60, "BULLETIN", "DE", "PAIE")...)
	words = append(words, rowWords(1, 100, "Salaire", "brut", "3", "000,00")...)
	words = append(words, rowWords(1, 120, "Total", "cotisations", "600,00")...)
	words = append(words, rowWords(1, 140, "Prélèvement", "à", "la", "source", "100,00")...)
	words = append(words, rowWords(1, 160, "Allègements", "(RGDU)", "302,40")...)
	words = append(words, rowWords(1, 200, "Net", "à", "payer", "2", "300,00")...)
	return words
}

func newTestAnalysisService(t *testing.T, processor PDFProcessor) *AnalysisService {
	t.Helper()
	store := NewParamsStore(filepath.Join(t.TempDir(), "rgdu_params.json"))
	return NewAnalysisService(processor, nil, store)
}

func TestAnalyzePayslipCoherentDocument(t *testing.T) {
	processor := &stubPDFProcessor{words: coherentPayslipWords(), pageCount: 1}
	svc := newTestAnalysisService(t, processor)

	analysis, err := svc.AnalyzePayslip([]byte("%PDF"))

	require.NoError(t, err)
	assert.Equal(t, dto.StatusOK, analysis.Status)
	assert.Empty(t, analysis.Anomalies)
	assert.Empty(t, analysis.Warnings)
	assert.NotEmpty(t, analysis.AnalysisID)

	require.NotNil(t, analysis.ExtractedData.SalaireBrut)
	assert.Equal(t, 3000.0, *analysis.ExtractedData.SalaireBrut.Value)
	require.NotNil(t, analysis.ExtractedData.NetAPayer)
	assert.Equal(t, 2300.0, *analysis.ExtractedData.NetAPayer.Value)
	require.NotNil(t, analysis.ExtractedData.Allegements)
	assert.Equal(t, 302.40, *analysis.ExtractedData.Allegements.Value)
}

func TestAnalyzePayslipAnomalousDocument(t *testing.T) {
	var words []dto.WordToken
	words = append(words, rowWords(1, 100, "Salaire", "brut", "3", "000,00")...)
	words = append(words, rowWords(1, 120, "Total", "cotisations", "600,00")...)
	words = append(words, rowWords(1, 140, "Allègements", "302,40")...)
	words = append(words, rowWords(1, 200, "Net", "à", "payer", "2", "500,00")...)
	words = append(words, rowWords(1, 220, "Mentions", "légales", "article", "L3243")...)

	processor := &stubPDFProcessor{words: words, pageCount: 1}
	svc := newTestAnalysisService(t, processor)

	analysis, err := svc.AnalyzePayslip([]byte("%PDF"))

	require.NoError(t, err)
	assert.Equal(t, dto.StatusAnomalies, analysis.Status)
	require.Len(t, analysis.Anomalies, 1)
	assert.Equal(t, dto.AnomalyE2, analysis.Anomalies[0].Code)
}

func TestAnalyzePayslipIdempotent(t *testing.T) {
	processor := &stubPDFProcessor{words: coherentPayslipWords(), pageCount: 1}
	svc := newTestAnalysisService(t, processor)

	first, err := svc.AnalyzePayslip([]byte("%PDF"))
	require.NoError(t, err)
	second, err := svc.AnalyzePayslip([]byte("%PDF"))
	require.NoError(t, err)

	// identical input, identical report (the run ID aside)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Anomalies, second.Anomalies)
	assert.Equal(t, first.ExtractedData, second.ExtractedData)
	assert.Equal(t, first.Warnings, second.Warnings)
}

func TestAnalyzePayslipLowTextWarning(t *testing.T) {
	// a near-empty page is flagged, never silently dropped
	processor := &stubPDFProcessor{words: rowWords(1, 100, "BULLETIN"), pageCount: 2}
	svc := newTestAnalysisService(t, processor)

	analysis, err := svc.AnalyzePayslip([]byte("%PDF"))

	require.NoError(t, err)
	assert.Contains(t, analysis.Warnings, "low_text_extraction_page_1")
	assert.Contains(t, analysis.Warnings, "low_text_extraction_page_2")
}

func TestAnalyzePayslipClassifiesExtractionFailure(t *testing.T) {
	processor := &stubPDFProcessor{err: errors.New("broken xref table")}
	svc := newTestAnalysisService(t, processor)

	_, err := svc.AnalyzePayslip([]byte("%PDF"))

	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrExtraction)
	assert.NotErrorIs(t, err, dto.ErrInvalidDocument)
}

func TestAnalyzePayslipPassesThroughInvalidDocument(t *testing.T) {
	processor := &stubPDFProcessor{
		err: fmt.Errorf("%w: not a pdf", dto.ErrInvalidDocument),
	}
	svc := newTestAnalysisService(t, processor)

	_, err := svc.AnalyzePayslip([]byte("GIF89a"))

	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrInvalidDocument)
}
