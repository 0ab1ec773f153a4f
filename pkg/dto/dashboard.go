package dto

type StatsResponse struct {
	Products     int64 `json:"products"`
	News         int64 `json:"news"`
	Inquiries    int64 `json:"inquiries"`
	NewInquiries int64 `json:"new_inquiries"`
	Users        int64 `json:"users"`
	// Approximate is set when counts were taken from cached or local
	// collections instead of the remote backend.
	Approximate bool `json:"approximate"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

type DeleteResponse struct {
	ID string `json:"id"`
}
