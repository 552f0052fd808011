package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	ErrMsgMissingUserHeader = "Missing X-User-ID header"

	ErrMsgListFarmsFailed    = "Failed to retrieve farms"
	ErrMsgListPlotsFailed    = "Failed to retrieve plots"
	ErrMsgListListingsFailed = "Failed to retrieve listings"
	ErrMsgDashboardFailed    = "Failed to load dashboard"
	ErrMsgWeatherFailed      = "Failed to retrieve weather data"
	ErrMsgAnalysisFailedHTTP = "Failed to analyze image"
)

// Success messages for API responses
const (
	MsgFarmDeletedSuccess     = "Farm deleted successfully"
	MsgPlotDeletedSuccess     = "Plot deleted successfully"
	MsgActivityDeletedSuccess = "Activity deleted successfully"
	MsgListingDeletedSuccess  = "Listing deleted successfully"
	MsgLocationCleared        = "Location cleared"
)
