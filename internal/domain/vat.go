package domain

// ValidVAT verifica un NIF portugués: nueve dígitos, primer dígito de un tipo de contribuyente
// conocido y dígito de control módulo 11.
func ValidVAT(vat int) bool {
	if vat < 100_000_000 || vat > 999_999_999 {
		return false
	}
	switch vat / 100_000_000 {
	case 1, 2, 3, 5, 6, 8, 9:
	default:
		return false
	}
	sum := 0
	rest := vat / 10
	for weight := 2; weight <= 9; weight++ {
		sum += (rest % 10) * weight
		rest /= 10
	}
	check := 11 - sum%11
	if check >= 10 {
		check = 0
	}
	return check == vat%10
}
