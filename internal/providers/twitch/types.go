package twitch

// tokenResponse is the OAuth payload from the client-credentials grant.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type searchCategoriesResponse struct {
	Data []categoryPayload `json:"data"`
}

type categoryPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type streamsResponse struct {
	Data       []streamPayload `json:"data"`
	Pagination struct {
		Cursor string `json:"cursor"`
	} `json:"pagination"`
}

type streamPayload struct {
	ID          string `json:"id"`
	UserName    string `json:"user_name"`
	GameID      string `json:"game_id"`
	GameName    string `json:"game_name"`
	ViewerCount int    `json:"viewer_count"`
}
