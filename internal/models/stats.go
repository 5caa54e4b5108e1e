package models

// Stats summarises the catalogue for the landing page counters.
type Stats struct {
	Problems  int `json:"problems"`
	Solutions int `json:"solutions"`
	Ideas     int `json:"ideas"`
	Votes     int `json:"votes"`
}
