package availability

import "time"

// Tariff is a fixed-duration bookable offer from the static catalog.
type Tariff struct {
	Code     string        `json:"code"`
	Duration time.Duration `json:"duration"`
}

// Catalog returns the tariff menu in presentation order (ascending duration).
// Callers depend on this ordering; never reorder the admitted subset.
func Catalog() []Tariff {
	return []Tariff{
		{Code: "3h", Duration: 3 * time.Hour},
		{Code: "10h", Duration: 10 * time.Hour},
		{Code: "24h", Duration: 24 * time.Hour},
	}
}
