package sse

import "time"

// EntryPayload is the public view of an accepted contribution
type EntryPayload struct {
	CycleNumber int64  `json:"cycle_number"`
	Participant string `json:"participant"`
	Amount      int64  `json:"amount"`
	PoolTotal   int64  `json:"pool_total"`
	Share       string `json:"share"`
}

// DrawnPayload announces the winner of a cycle
type DrawnPayload struct {
	CycleNumber int64  `json:"cycle_number"`
	Winner      string `json:"winner"`
	PrizeID     string `json:"prize_id"`
	PrizeName   string `json:"prize_name"`
	PoolTotal   int64  `json:"pool_total"`
	EntryCount  int    `json:"entry_count"`
}

// CycleOpenedPayload describes the cycle that just opened
type CycleOpenedPayload struct {
	CycleID     string    `json:"cycle_id"`
	CycleNumber int64     `json:"cycle_number"`
	PrizeID     string    `json:"prize_id"`
	PrizeName   string    `json:"prize_name"`
	Rarity      string    `json:"rarity"`
	Cap         int64     `json:"cap"`
	Deadline    time.Time `json:"deadline"`
	HadWinner   bool      `json:"previous_had_winner"`
}

// SettledPayload reports a credited prize
type SettledPayload struct {
	Participant string `json:"participant"`
	TokenKind   string `json:"token_kind"`
	Amount      int64  `json:"amount"`
}
