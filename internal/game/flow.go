package game

const (
	BaseHandSize = 5
	FlowLowMax   = 9
	FlowLowStart = 5
)

// FlowPair is the hysteresis counter that governs hand size. Low saturates
// within [0, 9] and carries into High; High is unbounded in both directions.
type FlowPair struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// NewFlowPair returns the starting pair (5, 0).
func NewFlowPair() FlowPair {
	return FlowPair{Low: FlowLowStart}
}

// Increment records one purchase. Crossing 9 wraps Low to 0 and grants a
// permanent extra draw.
func (f *FlowPair) Increment() {
	if f.Low == FlowLowMax {
		f.Low = 0
		f.High++
		return
	}
	f.Low++
}

// Decrement records one scrap. Crossing 0 wraps Low to 9 and removes a draw.
func (f *FlowPair) Decrement() {
	if f.Low == 0 {
		f.Low = FlowLowMax
		f.High--
		return
	}
	f.Low--
}

// HandSize is the number of cards drawn at the start of a turn. The floor
// of one applies here, never to High itself.
func (f FlowPair) HandSize() int {
	return max(1, BaseHandSize+f.High)
}
