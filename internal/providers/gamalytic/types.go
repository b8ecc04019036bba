package gamalytic

type listResponse struct {
	Result []listEntry `json:"result"`
}

type listEntry struct {
	SteamID int64  `json:"steamId"`
	Name    string `json:"name"`
}

// gameResponse is the market-intelligence payload for one title. Monetary
// figures come back in whole US dollars.
type gameResponse struct {
	SteamID         int64          `json:"steamId"`
	Name            string         `json:"name"`
	Price           float64        `json:"price"`
	Revenue         float64        `json:"revenue"`
	CopiesSold      int64          `json:"copiesSold"`
	ReviewScore     float64        `json:"reviewScore"`
	Reviews         int64          `json:"reviews"`
	Followers       int64          `json:"followers"`
	AvgPlaytime     float64        `json:"avgPlaytime"`
	ReleaseDate     int64          `json:"releaseDate"`
	Genres          []string       `json:"genres"`
	AlsoPlayed      []relatedEntry `json:"alsoPlayed"`
	AudienceOverlap []relatedEntry `json:"audienceOverlap"`
}

type relatedEntry struct {
	SteamID int64   `json:"steamId"`
	Name    string  `json:"name"`
	Link    float64 `json:"link"`
}
