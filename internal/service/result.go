package service

// FetchState distinguishes a legitimately empty collection from a failed
// fetch. Callers must not conflate the two: an empty cart renders as an empty
// cart, a failed fetch renders as an error with the backend's message.
type FetchState int

const (
	FetchLoaded FetchState = iota
	FetchEmpty
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchLoaded:
		return "loaded"
	case FetchEmpty:
		return "empty"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}
