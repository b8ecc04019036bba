package domain

// ChartType declares how the presentation layer should render a result.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartList ChartType = "list"
)

// ChartIntent is the declared chart for one answered query. The core never
// renders; it only says what kind of chart the data supports, which source
// answered, and the title to show.
type ChartIntent struct {
	Type   ChartType `json:"type"`
	Source Provider  `json:"source"`
	Title  string    `json:"title"`
}
