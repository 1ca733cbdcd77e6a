// Package fees prices deliveries from the pickup to dropoff distance.
package fees

import (
	"math"

	"food-delivery-dispatch/internal/domain"
)

// EarthRadiusKm is Earth's mean radius used by the haversine formula.
const EarthRadiusKm = 6371.0088

// Config holds delivery pricing, in cents.
type Config struct {
	BaseCents          int64
	PerKmCents         int64
	DriverSharePercent int
}

// Quoter computes fee breakdowns for new delivery claims.
type Quoter struct {
	cfg Config
}

// NewQuoter creates a Quoter.
func NewQuoter(cfg Config) *Quoter {
	return &Quoter{cfg: cfg}
}

// Quote returns the distance and fee split between pickup and dropoff.
// The per-km part is rounded up to a whole cent; the driver share is rounded
// down and the remainder is the platform commission.
func (q *Quoter) Quote(pickup, dropoff domain.Address) domain.FeeQuote {
	km := math.Round(DistanceKm(pickup, dropoff)*100) / 100
	fee := q.cfg.BaseCents + int64(math.Ceil(km*float64(q.cfg.PerKmCents)))
	payout := fee * int64(q.cfg.DriverSharePercent) / 100
	return domain.FeeQuote{
		DistanceKm:   km,
		DeliveryFee:  fee,
		DriverPayout: payout,
		Commission:   fee - payout,
	}
}

// DistanceKm is the great-circle distance between two addresses.
func DistanceKm(a, b domain.Address) float64 {
	const degToRad = math.Pi / 180
	dLat := (b.Lat - a.Lat) * degToRad
	dLng := (b.Lng - a.Lng) * degToRad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*degToRad)*math.Cos(b.Lat*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
