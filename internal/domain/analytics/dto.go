package analytics

// RecordRequest is the beacon sent by the site on first page view
type RecordRequest struct {
	VisitorID        string `json:"visitor_id" validate:"omitempty,max=64"`
	Platform         string `json:"platform" validate:"max=100"`
	ScreenResolution string `json:"screen_resolution" validate:"max=20"`
	Path             string `json:"path" validate:"max=500"`
	Referrer         string `json:"referrer" validate:"max=500"`
}

// RecordResponse tells the client whether the visit was new. VisitorID is
// echoed back so a client without one can persist the generated ID.
type RecordResponse struct {
	Recorded  bool   `json:"recorded"`
	VisitorID string `json:"visitor_id"`
}
