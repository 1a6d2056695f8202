package models

// Dashboard is everything the frontend renders for one selection.
type Dashboard struct {
	Selection   Selection    `json:"selection"`
	KPIs        KPIs         `json:"kpis"`
	Top         []RankedItem `json:"top"`
	Bottom      []RankedItem `json:"bottom"`
	Scatter     Scatter      `json:"scatter"`
	Trend       Series       `json:"trend"`
	Compare     []Series     `json:"compare"`
	Correlation Correlation  `json:"correlation"`
	Histogram   Histogram    `json:"histogram"`
	Ranking     RankingTable `json:"ranking"`
}

type Selection struct {
	Year    int      `json:"year"`
	TopN    int      `json:"top_n"`
	Factor  string   `json:"factor"`
	Country string   `json:"country"`
	Compare []string `json:"compare"`
}

// KPIs are column means over the whole dataset.
type KPIs struct {
	Rows    int     `json:"rows"`
	Score   float64 `json:"happiness_score"`
	Rank    float64 `json:"happiness_rank"`
	GDP     float64 `json:"gdp"`
	Health  float64 `json:"health"`
	Support float64 `json:"family"`
	Freedom float64 `json:"freedom"`
}

type RankedItem struct {
	Position int     `json:"position"`
	Country  string  `json:"country"`
	Year     int     `json:"year"`
	Value    float64 `json:"value"`
	Score    float64 `json:"happiness_score"`
}

type ScatterPoint struct {
	Country string  `json:"country"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
}

// Trendline is an ordinary least squares fit y = Slope*x + Intercept.
type Trendline struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

type Scatter struct {
	Factor    string         `json:"factor"`
	Year      int            `json:"year"`
	Points    []ScatterPoint `json:"points"`
	Trendline *Trendline     `json:"trendline,omitempty"`
}

type TrendPoint struct {
	Year  int     `json:"year"`
	Score float64 `json:"happiness_score"`
}

type Series struct {
	Name   string       `json:"name"`
	Points []TrendPoint `json:"points"`
}

// Correlation is a square matrix; a nil cell has no defined coefficient.
type Correlation struct {
	Fields []string     `json:"fields"`
	Values [][]*float64 `json:"values"`
	Errors []string     `json:"errors,omitempty"`
}

// Bin is one equal-width histogram bucket.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type Histogram struct {
	Field string `json:"field"`
	Year  int    `json:"year"`
	Bins  []Bin  `json:"bins"`
}

type RankingTable struct {
	Factor string       `json:"factor"`
	Year   int          `json:"year"`
	Rows   []RankedItem `json:"rows"`
}

// Meta lists the selectable values of a loaded dataset.
type Meta struct {
	Rows        int      `json:"rows"`
	Years       []int    `json:"years"`
	Countries   []string `json:"countries"`
	Factors     []string `json:"factors"`
	Fingerprint string   `json:"fingerprint"`
}
