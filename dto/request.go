package dto

import (
	"errors"
	"mime/multipart"
	"strings"
)

// AnalyzeRequest represents the incoming payslip upload
type AnalyzeRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// Validate performs basic validation on the request
func (r *AnalyzeRequest) Validate() error {
	if r.File == nil {
		return errors.New("a payslip file is required")
	}
	if !strings.HasSuffix(strings.ToLower(r.File.Filename), ".pdf") {
		return ErrInvalidDocument
	}
	return nil
}
