package domain

// CompletionTime is one leaderboard row. Lower Time ranks higher.
type CompletionTime struct {
	PlayerID PlayerID `json:"playerID"`
	Username string   `json:"username"`
	Time     int64    `json:"time"`
}
