package model

// Product represents a catalog item that can be promoted by a creator.
// Reference data supplied by the storage layer; treated as immutable.
type Product struct {
	ID             string
	Name           string
	Category       string
	Price          float64  // unit price in KRW
	Seasonality    []string // seasons the product sells well in ("spring", ...)
	TargetAudience []string // audience tags, e.g. "20s-female"
	CommissionRate float64  // average commission percentage
}

// InSeason reports whether the product's seasonality tags include the season.
func (p *Product) InSeason(season Season) bool {
	for _, tag := range p.Seasonality {
		if tag == string(season) || tag == "all" {
			return true
		}
	}
	return false
}
