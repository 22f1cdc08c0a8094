package dto

import "errors"

// Failure classes surfaced by the analysis pipeline. Handlers map them
// to HTTP statuses; callers can tell "could not read the document"
// (ErrExtraction) apart from "could not reason about its contents"
// (ErrRuleEvaluation).
var (
	ErrInvalidDocument = errors.New("invalid or unsupported document")
	ErrExtraction      = errors.New("document extraction failed")
	ErrRuleEvaluation  = errors.New("rule evaluation failed")
)
