package models

// Player represents one row of players.csv.
type Player struct {
	ID     int    `csv:"player_id" json:"player_id"`
	Name   string `csv:"player_name" json:"player_name"`
	Coach  string `csv:"coach" json:"coach"`
	Batch  string `csv:"batch" json:"batch"`
	Status string `csv:"status" json:"status"`
}
