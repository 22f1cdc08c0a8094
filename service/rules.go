package service

import (
	"fmt"
	"strings"

	"github.com/tmercier/payslip-anomaly-api/dto"
)

const (
	// Admitted drift between the displayed and the computed reduction
	// (rounding differences across payroll software).
	rgduTolerance = 2.0

	// Admitted drift on the net reconstruction. Generous because the
	// extracted cotisations may mix employer/employee shares. An
	// earlier revision used 5.0; 10.0 is pending product confirmation.
	arithmeticTolerance = 10.0
)

// CheckRules evaluates every anomaly rule over the extracted fields,
// in fixed order: RGDU coherence (E1), missing critical fields (E1),
// arithmetic coherence (E2), aberrant values (E3). The returned slice
// keeps that evaluation order.
func CheckRules(data dto.PayslipData, params dto.RGDUParams) []dto.Anomaly {
	var anomalies []dto.Anomaly

	// --- E1: RGDU / allègements coherence ---
	// With a brut we can compute the expected reduction; if the payslip
	// shows an allègements amount we compare, otherwise we can only
	// check that one should have been there.
	if data.SalaireBrut != nil && data.SalaireBrut.Value != nil {
		brut := *data.SalaireBrut.Value

		// Overtime hours are not extracted yet, assume none.
		calc := CalculerRGDU(
			brut,
			params.HeuresContractuelles,
			0,
			params.Effectif50EtPlus,
			params.SmicMensuel,
			params.TdeltaOpt,
		)

		if data.Allegements != nil && data.Allegements.Value != nil {
			extracted := *data.Allegements.Value
			diff := extracted - calc.ReductionMensuelle
			if diff < 0 {
				diff = -diff
			}

			if diff > rgduTolerance {
				effectif := "<50"
				if params.Effectif50EtPlus {
					effectif = "≥50"
				}
				anomalies = append(anomalies, dto.Anomaly{
					Code:     dto.AnomalyE1,
					Title:    "Erreur RGDU (Montant incorrect)",
					Severity: dto.SeverityHigh,
					Explanation: fmt.Sprintf(
						"Montant détecté : %.2f €. Montant calculé (RGDU) : %.2f €. Paramètres utilisés : SMIC=%.2f, Effectif %s. Écart : %.2f €.",
						extracted, calc.ReductionMensuelle, params.SmicMensuel, effectif, diff),
					References: append(append([]dto.TextReference{}, data.Allegements.References...), data.SalaireBrut.References...),
				})
			}
		} else if calc.Eligible && calc.ReductionMensuelle > 0 {
			// Eligible but nothing detected: could be missing on the
			// payslip or simply not extracted, hence MEDIUM.
			anomalies = append(anomalies, dto.Anomaly{
				Code:     dto.AnomalyE1,
				Title:    "Absence de RGDU (Éligibilité détectée)",
				Severity: dto.SeverityMedium,
				Explanation: fmt.Sprintf(
					"Le salarié semble éligible à une RGDU de %.2f € (Brut: %.2f), mais aucun montant d'allègement n'a été détecté.",
					calc.ReductionMensuelle, brut),
				References: append([]dto.TextReference{}, data.SalaireBrut.References...),
			})
		}
	}

	// --- E1: missing critical fields ---
	var missing []string
	if data.NetAPayer == nil || data.NetAPayer.Value == nil {
		missing = append(missing, "Net à payer")
	}
	if data.SalaireBrut == nil || data.SalaireBrut.Value == nil {
		missing = append(missing, "Salaire brut")
	}
	if len(missing) > 0 {
		anomalies = append(anomalies, dto.Anomaly{
			Code:     dto.AnomalyE1,
			Title:    "Champs critiques manquants",
			Severity: dto.SeverityHigh,
			Explanation: fmt.Sprintf(
				"Champs non détectés sur le bulletin : %s.", strings.Join(missing, ", ")),
			References: []dto.TextReference{},
		})
	}

	// --- E2: arithmetic coherence ---
	if data.SalaireBrut != nil && data.NetAPayer != nil {
		check := VerifierCoherenceArithmetique(
			data.SalaireBrut.Value,
			data.NetAPayer.Value,
			fieldValue(data.TotalCotisations),
			fieldValue(data.PrelevementSource),
			arithmeticTolerance,
		)

		if !check.Skip && check.Anomalie {
			var refs []dto.TextReference
			for _, f := range []*dto.ExtractedField{data.SalaireBrut, data.NetAPayer, data.TotalCotisations, data.PrelevementSource} {
				if f != nil {
					refs = append(refs, f.References...)
				}
			}
			anomalies = append(anomalies, dto.Anomaly{
				Code:        dto.AnomalyE2,
				Title:       "Incohérence arithmétique globale",
				Severity:    dto.SeverityMedium,
				Explanation: fmt.Sprintf("Calcul incohérent : %s", check.Details),
				References:  refs,
			})
		}
	}

	// --- E3: aberrant values ---
	for _, ab := range VerifierValeursAberrantes(data) {
		anomalies = append(anomalies, dto.Anomaly{
			Code:        dto.AnomalyE3,
			Title:       fmt.Sprintf("Montant incohérent (%s)", ab.Type),
			Severity:    dto.SeverityHigh,
			Explanation: ab.Message,
			References:  ab.References,
		})
	}

	return anomalies
}

func fieldValue(field *dto.ExtractedField) *float64 {
	if field == nil {
		return nil
	}
	return field.Value
}
