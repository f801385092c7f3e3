package rag

// Fusion weights for retrieval score vs model self-confidence.
const (
	WeightRetrieval = 0.6
	WeightSelf      = 0.4
)

func Clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// FuseConfidence combines the retrieval top score and the model's
// self-reported confidence into a single [0,1] value. A nil input means
// the signal is missing, not zero.
func FuseConfidence(topScore, selfConfidence *float64) float64 {
	if topScore == nil && selfConfidence == nil {
		return 0.0
	}
	if selfConfidence == nil {
		return Clamp(*topScore, 0.0, 1.0)
	}
	if topScore == nil {
		return Clamp(*selfConfidence, 0.0, 1.0)
	}
	combined := WeightRetrieval*(*topScore) + WeightSelf*(*selfConfidence)
	return Clamp(combined, 0.0, 1.0)
}
