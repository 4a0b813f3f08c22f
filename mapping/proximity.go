package mapping

// DefaultMaxDistance is the alert threshold in centimeters.
const DefaultMaxDistance = 60

// ShouldBuzz reports whether an obstacle at distance cm is close enough to alert.
func ShouldBuzz(distance, maxDistance int) bool {
	return distance < maxDistance
}
