package acquisition

// Record is one acquired sample frame: a value per channel plus the sample
// index since acquisition start. Dividing Timestamp by the device sampling
// rate gives seconds on the acquisition clock.
type Record struct {
	Data      []float64 `json:"data"`
	Timestamp float64   `json:"timestamp"`
}

// Trigger returns the value of the trigger channel (the last channel), or
// zero when the record has no data.
func (r Record) Trigger() float64 {
	if len(r.Data) == 0 {
		return 0
	}
	return r.Data[len(r.Data)-1]
}
