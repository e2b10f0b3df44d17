package domain

// Currency carries the minor-unit precision used when rounding amounts.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // ISO 4217
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	DecimalPlaces int32  `json:"decimalPlaces"`
	AuditFields
}
