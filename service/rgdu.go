package service

import "math"

// Coefficients of the regressive general reduction formula.
const (
	rgduTmin = 0.0200
	rgduP    = 1.75

	tdeltaEffectif50Plus  = 0.3821 // FNAL at 0.50%
	tdeltaEffectifMoins50 = 0.3781 // FNAL at 0.10%

	heuresTempsPlein = 151.67 // 35h monthly basis
)

// RGDUParametres echoes the coefficients a calculation ran with.
type RGDUParametres struct {
	Tmin     float64 `json:"Tmin"`
	Tdelta   float64 `json:"Tdelta"`
	Tmax     float64 `json:"Tmax"`
	P        float64 `json:"P"`
	Effectif string  `json:"effectif"`
}

// RGDUResult carries the detail of every calculation step so an
// anomaly report can explain how a reduction was obtained. Diagnostic
// fields are populated even when the employee is not eligible.
type RGDUResult struct {
	SmicReference        float64        `json:"smic_reference"`
	MajorationHS         float64        `json:"majoration_hs"`
	SmicAjuste           float64        `json:"smic_ajuste"`
	SmicAnnuel           float64        `json:"smic_annuel"`
	AssietteBrut         float64        `json:"assiette_brut"`
	RAB                  float64        `json:"rab"`
	RatioSmic            float64        `json:"ratio_smic"`
	Seuil3Smic           float64        `json:"seuil_3_smic"`
	Eligible             bool           `json:"eligible"`
	Inner                float64        `json:"inner"`
	CoefficientDegressif float64        `json:"coefficient_degressif"`
	Coefficient          float64        `json:"coefficient"`
	ReductionMensuelle   float64        `json:"reduction_mensuelle"`
	Parametres           RGDUParametres `json:"parametres"`
}

// CalculerRGDU computes the monthly réduction générale dégressive
// unique for one payslip. Pure function; the rounding order matters:
// smic_reference and majoration_hs are rounded to 2 decimals before
// summing, the coefficient is derived from unrounded ratios, then
// rounded to 4 decimals, and the reduction to 2.
func CalculerRGDU(
	brutMensuel float64,
	heuresContractuelles float64,
	heuresSupplementaires float64,
	effectif50EtPlus bool,
	smicMensuel float64,
	tdeltaOpt *float64,
) RGDUResult {
	tdelta := tdeltaEffectifMoins50
	if effectif50EtPlus {
		tdelta = tdeltaEffectif50Plus
	}
	if tdeltaOpt != nil {
		tdelta = *tdeltaOpt
	}
	tmax := rgduTmin + tdelta

	effectif := "< 50"
	if effectif50EtPlus {
		effectif = "≥ 50"
	}

	// Étape 1 : SMIC de référence mensuel, proratisé selon les heures
	// contractuelles
	smicReference := round2(smicMensuel * (heuresContractuelles / heuresTempsPlein))

	// Étape 2 : majoration heures supplémentaires
	smicHoraire := smicMensuel / heuresTempsPlein
	majorationHS := round2(smicHoraire * heuresSupplementaires)

	// Étape 3 : SMIC ajusté mensuel, puis annualisation
	smicAjuste := smicReference + majorationHS
	smicAnnuel := smicAjuste * 12
	rab := brutMensuel * 12

	// Étape 4 : éligibilité, strictement sous 3 × SMIC ajusté
	seuil3Smic := 3 * smicAjuste

	ratioSmic := 0.0
	if smicAjuste != 0 {
		ratioSmic = brutMensuel / smicAjuste
	}

	result := RGDUResult{
		SmicReference: smicReference,
		MajorationHS:  majorationHS,
		SmicAjuste:    round2(smicAjuste),
		SmicAnnuel:    round2(smicAnnuel),
		AssietteBrut:  brutMensuel,
		RAB:           round2(rab),
		RatioSmic:     round3(ratioSmic),
		Seuil3Smic:    round2(seuil3Smic),
		Parametres: RGDUParametres{
			Tmin:     rgduTmin,
			Tdelta:   tdelta,
			Tmax:     tmax,
			P:        rgduP,
			Effectif: effectif,
		},
	}

	if brutMensuel >= seuil3Smic {
		return result
	}
	result.Eligible = true

	// Étape 5 : coefficient dégressif
	// inner = 1/2 × (3 × SMIC_annuel / RAB − 1)
	inner := 0.0
	if rab > 0 {
		inner = 0.5 * (3*smicAnnuel/rab - 1)
	}

	coefficientDegressif := 0.0
	if inner > 0 {
		coefficientDegressif = math.Pow(inner, rgduP)
	}

	// Étape 6 : taux applicable, plafonné à Tmax, plancher Tmin
	coefficient := rgduTmin + tdelta*coefficientDegressif
	coefficient = math.Min(coefficient, tmax)
	coefficient = math.Max(coefficient, rgduTmin)
	coefficient = round4(coefficient)

	result.Inner = round6(inner)
	result.CoefficientDegressif = round6(coefficientDegressif)
	result.Coefficient = coefficient

	// Étape 7 : réduction mensuelle
	result.ReductionMensuelle = round2(coefficient * brutMensuel)

	return result
}

func round2(x float64) float64 { return math.Round(x*1e2) / 1e2 }

func round3(x float64) float64 { return math.Round(x*1e3) / 1e3 }

func round4(x float64) float64 { return math.Round(x*1e4) / 1e4 }

func round6(x float64) float64 { return math.Round(x*1e6) / 1e6 }
