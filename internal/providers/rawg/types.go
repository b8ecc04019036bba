package rawg

type searchResponse struct {
	Results []gameResponse `json:"results"`
}

type gameResponse struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Released     string     `json:"released"`
	Rating       float64    `json:"rating"`
	RatingsCount int        `json:"ratings_count"`
	Metacritic   int        `json:"metacritic"`
	Playtime     int        `json:"playtime"`
	Genres       []genreRef `json:"genres"`
}

type genreRef struct {
	Name string `json:"name"`
}
