package service

import "fmt"

// ArithmeticCheck is the outcome of the simplified net-pay
// reconstruction: Net à payer ≈ Brut − Cotisations − PAS.
type ArithmeticCheck struct {
	Skip              bool
	Reason            string
	Brut              float64
	Cotisations       float64
	PrelevementSource float64
	NetAffiche        float64
	NetCalcule        float64
	Ecart             float64
	Tolerance         float64
	Anomalie          bool
	Details           string
}

// VerifierCoherenceArithmetique checks the global arithmetic coherence
// of a payslip. Skips when brut or net is missing. The formula is an
// approximation: the extracted "total cotisations" may mix employer
// and employee shares, hence the generous tolerance chosen upstream.
func VerifierCoherenceArithmetique(salaireBrut, netAPayer, totalCotisations, prelevementSource *float64, tolerance float64) ArithmeticCheck {
	if salaireBrut == nil || netAPayer == nil {
		return ArithmeticCheck{Skip: true, Reason: "Manque Brut ou Net"}
	}

	brut := *salaireBrut
	net := *netAPayer
	cotis := 0.0
	if totalCotisations != nil {
		cotis = *totalCotisations
	}
	pas := 0.0
	if prelevementSource != nil {
		pas = *prelevementSource
	}

	netCalcule := brut - cotis - pas
	ecart := netCalcule - net
	if ecart < 0 {
		ecart = -ecart
	}

	return ArithmeticCheck{
		Brut:              brut,
		Cotisations:       cotis,
		PrelevementSource: pas,
		NetAffiche:        net,
		NetCalcule:        round2(netCalcule),
		Ecart:             round2(ecart),
		Tolerance:         tolerance,
		Anomalie:          ecart > tolerance,
		Details: fmt.Sprintf("Brut (%.2f) - Cotisations (%.2f) - PAS (%.2f) = %.2f (Attendu: %.2f)",
			brut, cotis, pas, netCalcule, net),
	}
}
