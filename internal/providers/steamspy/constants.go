package steamspy

const (
	providerName   = "steamspy"
	defaultBaseURL = "https://steamspy.com/api.php"

	requestAppDetails = "appdetails"
	requestAll        = "all"

	// The mirror has no search endpoint; Search scans the first page of the
	// bulk catalog and filters locally.
	searchPage       = "0"
	maxSearchMatches = 25

	confidenceExact     = 1.0
	confidenceSubstring = 0.7

	exactMatchThreshold = 0.95
)
