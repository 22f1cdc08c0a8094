package service

import (
	"fmt"

	"github.com/tmercier/payslip-anomaly-api/dto"
)

// AberrantValue describes a structurally impossible extracted value.
type AberrantValue struct {
	Type       string
	Field      string
	Value      float64
	Message    string
	References []dto.TextReference
}

// VerifierValeursAberrantes flags negative brut and negative net
// independently. Brut vs. net magnitude ordering is deliberately not
// compared here.
func VerifierValeursAberrantes(data dto.PayslipData) []AberrantValue {
	var found []AberrantValue

	if data.SalaireBrut != nil && data.SalaireBrut.Value != nil && *data.SalaireBrut.Value < 0 {
		found = append(found, AberrantValue{
			Type:       "NEGATIF",
			Field:      "salaire_brut",
			Value:      *data.SalaireBrut.Value,
			Message:    fmt.Sprintf("Le salaire brut détecté est négatif (%.2f).", *data.SalaireBrut.Value),
			References: data.SalaireBrut.References,
		})
	}

	if data.NetAPayer != nil && data.NetAPayer.Value != nil && *data.NetAPayer.Value < 0 {
		found = append(found, AberrantValue{
			Type:       "NEGATIF",
			Field:      "net_a_payer",
			Value:      *data.NetAPayer.Value,
			Message:    fmt.Sprintf("Le net à payer détecté est négatif (%.2f).", *data.NetAPayer.Value),
			References: data.NetAPayer.References,
		})
	}

	return found
}
