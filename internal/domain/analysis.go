package domain

// AnalysisInput carries the context a producer supplies when requesting a
// plant-image diagnosis.
type AnalysisInput struct {
	ImageURL       string `json:"image_url"`
	Culture        string `json:"culture"`
	Symptoms       string `json:"symptoms"`
	AffectedArea   string `json:"affected_area"`
	TimeFrame      string `json:"time_frame"`
	RecentProducts string `json:"recent_products"`
	WeatherChanges string `json:"weather_changes"`
	Location       string `json:"location,omitempty"`
}

// AnalysisResult is the diagnosis produced by the model.
type AnalysisResult struct {
	ImageURL string `json:"image_url"`
	Analysis string `json:"analysis"`
}
