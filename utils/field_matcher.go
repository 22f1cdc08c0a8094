package utils

import (
	"regexp"

	"github.com/tmercier/payslip-anomaly-api/dto"
)

// MatchConfidence is the fixed confidence assigned to any populated
// field. It is a placeholder, not a calibrated estimate; callers must
// not treat it as one.
const MatchConfidence = 0.8

// FieldID enumerates the PayslipData slots the matcher can assign.
type FieldID int

const (
	FieldNetAPayer FieldID = iota
	FieldSalaireBrut
	FieldNetImposable
	FieldPrelevementSource
	FieldTotalCotisations
	FieldAllegements
	FieldPeriode
)

// fieldPattern is one row of the matching table: the normalized-key
// regexes that identify a field's label line, plus the tie-break mode
// when several lines match the same field.
type fieldPattern struct {
	field    FieldID
	patterns []*regexp.Regexp
	// matchLast overwrites on every later match instead of keeping the
	// first one. A running net figure may repeat down the page; the
	// bottom occurrence is the authoritative total.
	matchLast bool
}

var fieldPatterns = []fieldPattern{
	{
		field:     FieldNetAPayer,
		patterns:  compileAll(`netapayer`, `netpaye`, `resteapayer`),
		matchLast: true,
	},
	{
		field: FieldSalaireBrut,
		// "brut imposable" differs from brut but often proxies it
		patterns: compileAll(`salairebrut`, `bruttotal`, `totalbrut`, `brutimposable`),
	},
	{
		field:    FieldNetImposable,
		patterns: compileAll(`netimposable`, `netfiscal`, `netapdeclarer`),
	},
	{
		field:    FieldPrelevementSource,
		patterns: compileAll(`impotsurserevenu`, `prelevementalasource`, `pas`),
	},
	{
		field:    FieldTotalCotisations,
		patterns: compileAll(`totalcotisations`, `totalretenues`, `totalcharges`),
	},
	{
		field:    FieldAllegements,
		patterns: compileAll(`allegements`, `exonerations`, `reductiongenerale`, `rgdu`, `allgt`),
	},
	{
		field:    FieldPeriode,
		patterns: compileAll(`periode`),
	},
}

// amountShape matches maximal runs that could hold a monetary value in
// the original (non-normalized) line text.
var amountShape = regexp.MustCompile(`[0-9\s\x{00A0}\x{202F}.,]+`)

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		compiled[i] = regexp.MustCompile(e)
	}
	return compiled
}

// ExtractPayslipData scans lines against the field-pattern table and
// fills a PayslipData. Per field: the first matching line wins, except
// matchLast fields which keep overwriting. Per line: the last parseable
// amount wins (the label generally precedes the value). Lines matching
// a label but carrying no parseable amount are skipped silently.
func ExtractPayslipData(lines []dto.Line) dto.PayslipData {
	var data dto.PayslipData

	for _, line := range lines {
		key := NormalizeKey(line.Text)

		for _, fp := range fieldPatterns {
			if !matchesAny(fp.patterns, key) {
				continue
			}

			value := lastAmountOnLine(line.Text)
			if value == nil {
				continue
			}

			if existing := lookupField(&data, fp.field); existing != nil && !fp.matchLast {
				continue
			}

			assignField(&data, fp.field, &dto.ExtractedField{
				Value:      value,
				RawText:    line.Text,
				Confidence: MatchConfidence,
				References: []dto.TextReference{lineReference(line)},
			})
		}
	}

	return data
}

func matchesAny(patterns []*regexp.Regexp, key string) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

// lastAmountOnLine extracts every amount-shaped substring from the
// original line text and returns the last one that parses.
func lastAmountOnLine(text string) *float64 {
	var last *float64
	for _, cand := range amountShape.FindAllString(text, -1) {
		if v := ParseFrenchAmount(cand); v != nil {
			last = v
		}
	}
	return last
}

func lineReference(line dto.Line) dto.TextReference {
	ref := dto.TextReference{
		Page:        line.Page,
		TextSnippet: line.Text,
	}
	// OCR-recovered lines carry no geometry
	if line.BBox != (dto.BBox{}) {
		bbox := line.BBox
		ref.BBox = &bbox
	}
	return ref
}

func lookupField(data *dto.PayslipData, id FieldID) *dto.ExtractedField {
	switch id {
	case FieldNetAPayer:
		return data.NetAPayer
	case FieldSalaireBrut:
		return data.SalaireBrut
	case FieldNetImposable:
		return data.NetImposable
	case FieldPrelevementSource:
		return data.PrelevementSource
	case FieldTotalCotisations:
		return data.TotalCotisations
	case FieldAllegements:
		return data.Allegements
	case FieldPeriode:
		return data.Periode
	}
	return nil
}

func assignField(data *dto.PayslipData, id FieldID, field *dto.ExtractedField) {
	switch id {
	case FieldNetAPayer:
		data.NetAPayer = field
	case FieldSalaireBrut:
		data.SalaireBrut = field
	case FieldNetImposable:
		data.NetImposable = field
	case FieldPrelevementSource:
		data.PrelevementSource = field
	case FieldTotalCotisations:
		data.TotalCotisations = field
	case FieldAllegements:
		data.Allegements = field
	case FieldPeriode:
		data.Periode = field
	}
}
