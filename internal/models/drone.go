package models

type PayloadTier string

const (
	TierLight  PayloadTier = "Light"
	TierMedium PayloadTier = "Medium"
	TierHeavy  PayloadTier = "Heavy"
)

// Upper bounds (inclusive) of the Light and Medium tiers.
const (
	LightMaxPayload  = 10.0
	MediumMaxPayload = 25.0
)

type Drone struct {
	ID          string
	Model       string
	Payload     *float64
	FlyingHours *float64
	DisasterID  *string // nil when the drone is not deployed
}

// TierForPayload buckets a payload capacity. A nil payload has no tier.
func TierForPayload(payload *float64) (PayloadTier, bool) {
	if payload == nil {
		return "", false
	}
	switch p := *payload; {
	case p <= LightMaxPayload:
		return TierLight, true
	case p <= MediumMaxPayload:
		return TierMedium, true
	default:
		return TierHeavy, true
	}
}
