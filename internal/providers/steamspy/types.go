package steamspy

// appDetailsResponse is the flat payload steamspy.com returns per app.
// Prices come back as strings holding integer USD cents; playtime fields are
// minutes; owners is a "low .. high" range string.
type appDetailsResponse struct {
	AppID          int    `json:"appid"`
	Name           string `json:"name"`
	Developer      string `json:"developer"`
	Publisher      string `json:"publisher"`
	Owners         string `json:"owners"`
	AverageForever int    `json:"average_forever"`
	Average2Weeks  int    `json:"average_2weeks"`
	MedianForever  int    `json:"median_forever"`
	Median2Weeks   int    `json:"median_2weeks"`
	CCU            int    `json:"ccu"`
	Price          string `json:"price"`
	InitialPrice   string `json:"initialprice"`
	Discount       string `json:"discount"`
	Positive       int    `json:"positive"`
	Negative       int    `json:"negative"`
	Userscore      int    `json:"userscore"`
	Genre          string `json:"genre"`
}

type catalogEntry struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}
