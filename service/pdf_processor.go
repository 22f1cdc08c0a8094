package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tmercier/payslip-anomaly-api/dto"
)

// PageImage is one embedded image extracted from the document, tagged
// with its page number.
type PageImage struct {
	Page  int
	Image image.Image
}

// PDFProcessor is the token source: it turns raw document bytes into
// per-page word tokens (no order guaranteed) and, for the OCR
// fallback, embedded page images.
type PDFProcessor interface {
	ExtractWords(pdfData []byte) (words []dto.WordToken, pageCount int, err error)
	ExtractImages(pdfData []byte) ([]PageImage, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

func (p *pdfProcessor) ExtractWords(pdfData []byte) ([]dto.WordToken, int, error) {
	// Structural validation up front, so malformed uploads are rejected
	// before any extraction is attempted.
	conf := model.NewDefaultConfiguration()
	if err := api.Validate(bytes.NewReader(pdfData), conf); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", dto.ErrInvalidDocument, err)
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open pdf: %w", err)
	}

	var words []dto.WordToken
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		height := pageHeight(page)
		for _, t := range page.Content().Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			// PDF user space is bottom-up; flip so y0 is the top edge,
			// which is what the line grouper clusters on.
			top := height - t.Y - t.FontSize
			words = append(words, dto.WordToken{
				Page: pageIndex,
				Text: t.S,
				BBox: dto.BBox{t.X, top, t.X + t.W, height - t.Y},
			})
		}
	}

	return words, totalPage, nil
}

func pageHeight(page pdf.Page) float64 {
	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Len() == 4 {
		return mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}
	return 842 // A4 portrait
}

// extractedImageName matches pdfcpu's output naming: <base>_<page>_<id>.<ext>
var extractedImageName = regexp.MustCompile(`_(\d+)_[^_]+\.\w+$`)

func (p *pdfProcessor) ExtractImages(pdfData []byte) ([]PageImage, error) {
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "doc-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []PageImage
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(tempDir, file.Name()))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}

		pageNr := len(images) + 1
		if m := extractedImageName.FindStringSubmatch(file.Name()); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				pageNr = n
			}
		}

		images = append(images, PageImage{Page: pageNr, Image: img})
	}

	return images, nil
}
