package entity

// Stats are the aggregate counters kept across all finished games.
type Stats struct {
	GamesPlayed int64 `json:"games_played"`
	WinsFirst   int64 `json:"wins_first"`
	WinsSecond  int64 `json:"wins_second"`
	Draws       int64 `json:"draws"`
	Forfeits    int64 `json:"forfeits"`
}
