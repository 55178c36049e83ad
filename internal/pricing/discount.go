package pricing

import "strings"

// Codes de réduction connus → pourcentage (fraction)
var discountCodes = map[string]float64{
	"CONE10": 0.10,
}

// NormalizeCode nettoie un code saisi par l'utilisateur
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupDiscount retourne le pourcentage associé au code, insensible à la casse
func LookupDiscount(code string) (string, float64, bool) {
	normalized := NormalizeCode(code)
	pct, ok := discountCodes[normalized]
	if !ok {
		return "", 0, false
	}
	return normalized, pct, true
}
