package domain

const (
	PeriodToday = "today"
	PeriodAll   = "all"
)

const (
	SourceCache    = "cache"
	SourceDatabase = "database"
)

type ItemStat struct {
	MenuID   int    `json:"menuId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type RestaurantAnalytics struct {
	RestaurantID int        `json:"restaurantId"`
	Period       string     `json:"period"`
	Revenue      float64    `json:"revenue"`
	Orders       int        `json:"orders"`
	Cancelled    int        `json:"cancelled"`
	AvgRating    float64    `json:"avgRating"`
	RatingCount  int        `json:"ratingCount"`
	TopItems     []ItemStat `json:"topItems"`
	Source       string     `json:"source"`
}

type RestaurantRank struct {
	RestaurantID int     `json:"restaurantId"`
	Name         string  `json:"name"`
	AvgRating    float64 `json:"avgRating"`
	RatingCount  int     `json:"ratingCount"`
}
