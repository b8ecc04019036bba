package steam

type storeSearchResponse struct {
	Items []storeSearchItem `json:"items"`
}

type storeSearchItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type appDetailsEntry struct {
	Success bool           `json:"success"`
	Data    appDetailsData `json:"data"`
}

type appDetailsData struct {
	Name            string           `json:"name"`
	PriceOverview   *priceOverview   `json:"price_overview"`
	ReleaseDate     releaseDate      `json:"release_date"`
	Genres          []genreRef       `json:"genres"`
	Metacritic      *metacriticBlock `json:"metacritic"`
	Recommendations *recommendations `json:"recommendations"`
}

type priceOverview struct {
	Currency string `json:"currency"`
	Final    int    `json:"final"`
}

type releaseDate struct {
	Date string `json:"date"`
}

type genreRef struct {
	Description string `json:"description"`
}

type metacriticBlock struct {
	Score int `json:"score"`
}

type recommendations struct {
	Total int `json:"total"`
}

type playerCountResponse struct {
	Response struct {
		PlayerCount int `json:"player_count"`
		Result      int `json:"result"`
	} `json:"response"`
}
