package asce

// ASCE 7 Chapter 8 - Rain loads

const (
	// RainUnitWeight is the weight of ponded water per inch of depth (lb/ft² per in)
	RainUnitWeight = 5.2

	// flowRateCoefficient converts ft²·in/h into gal/min (ASCE 7 Eq. C8.3-1)
	flowRateCoefficient = 0.0104
)

// RainLoad returns the water load (psf) for a depth in inches
func RainLoad(depth float64) float64 {
	return RainUnitWeight * depth
}

// FlowRate returns the flow (gal/min) reaching a drain that serves drainageArea
// square feet under a rainfall intensity in inches per hour.
func FlowRate(drainageArea, rainfallIntensity float64) float64 {
	return flowRateCoefficient * drainageArea * rainfallIntensity
}
