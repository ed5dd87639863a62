package request

// ActivityRequest reports a client activity signal. Active alone resets the
// idle timer without an activity kind.
type ActivityRequest struct {
	Kind   string `json:"kind"`
	Active bool   `json:"active"`
}
