package dto

type AnomalyCode string

const (
	AnomalyE1 AnomalyCode = "E1" // Missing critical fields / RGDU mismatch
	AnomalyE2 AnomalyCode = "E2" // Arithmetic inconsistency
	AnomalyE3 AnomalyCode = "E3" // Negative or incoherent totals
)

type AnomalySeverity string

const (
	SeverityHigh   AnomalySeverity = "HIGH"
	SeverityMedium AnomalySeverity = "MEDIUM"
	SeverityLow    AnomalySeverity = "LOW"
)

// BBox is a page-space rectangle [x0, y0, x1, y1], y0 being the top edge.
type BBox [4]float64

// WordToken is a single word extracted from the document, as delivered
// by the PDF processor. Order is not guaranteed; the line grouper sorts.
type WordToken struct {
	Page int    `json:"page"`
	Text string `json:"text"`
	BBox BBox   `json:"bbox"`
}

// Line is one visually distinct text row, rebuilt from word tokens.
type Line struct {
	Page int    `json:"page"`
	Text string `json:"text"`
	BBox BBox   `json:"bbox"`
}

// TextReference points back into the source document as evidence for
// an extracted value or an anomaly.
type TextReference struct {
	Page        int    `json:"page"`
	TextSnippet string `json:"text_snippet"`
	BBox        *BBox  `json:"bbox,omitempty"`
}

// ExtractedField holds one monetary (or textual) field pulled from the
// payslip. A nil Value means "not found", which is distinct from 0.
type ExtractedField struct {
	Value      *float64        `json:"value"`
	RawText    string          `json:"raw_text,omitempty"`
	Confidence float64         `json:"confidence"`
	References []TextReference `json:"references"`
}

// PayslipData is the closed set of fields the matcher can populate.
// A nil slot means the field was not found on the payslip.
type PayslipData struct {
	NetAPayer         *ExtractedField `json:"net_a_payer,omitempty"`
	SalaireBrut       *ExtractedField `json:"salaire_brut,omitempty"`
	TotalCotisations  *ExtractedField `json:"total_cotisations,omitempty"`
	PrelevementSource *ExtractedField `json:"prelevement_source,omitempty"`
	NetImposable      *ExtractedField `json:"net_imposable,omitempty"`
	Allegements       *ExtractedField `json:"allegements,omitempty"` // RGDU / reductions
	Periode           *ExtractedField `json:"periode,omitempty"`
}

type Anomaly struct {
	Code        AnomalyCode     `json:"code"`
	Title       string          `json:"title"`
	Severity    AnomalySeverity `json:"severity"`
	Explanation string          `json:"explanation"`
	References  []TextReference `json:"references"`
}

const (
	StatusOK        = "OK"
	StatusAnomalies = "ANOMALIES"
)

// PayslipAnalysis is the terminal artifact of one analysis run.
type PayslipAnalysis struct {
	AnalysisID    string      `json:"analysis_id"`
	Status        string      `json:"status"`
	Anomalies     []Anomaly   `json:"anomalies"`
	ExtractedData PayslipData `json:"extracted_data"`
	Warnings      []string    `json:"warnings,omitempty"`
}

// RGDUParams drives the payroll reduction calculator. Loaded from the
// params store at analysis time, editable through the params endpoints.
type RGDUParams struct {
	HeuresContractuelles float64  `json:"heures_contractuelles"`
	Effectif50EtPlus     bool     `json:"effectif_50_et_plus"`
	SmicMensuel          float64  `json:"smic_mensuel"`
	TdeltaOpt            *float64 `json:"tdeltaopt,omitempty"`
}

// DefaultRGDUParams returns the statutory defaults (35h contract,
// SMIC mensuel 1823.03, headcount >= 50).
func DefaultRGDUParams() RGDUParams {
	return RGDUParams{
		HeuresContractuelles: 151.67,
		Effectif50EtPlus:     true,
		SmicMensuel:          1823.03,
	}
}
