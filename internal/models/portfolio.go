package models

// PortfolioEntry links a player to a company in their model portfolio.
// Rows are denormalized: the player and company identifying fields are
// copied in at creation time, matching one row of model_portfolios.csv.
type PortfolioEntry struct {
	PlayerID      int     `csv:"player_id" json:"player_id"`
	PlayerName    string  `csv:"player_name" json:"player_name"`
	CompanyID     int     `csv:"company_id" json:"company_id"`
	CompanyName   string  `csv:"company_name" json:"company_name"`
	AllocationPct float64 `csv:"allocation_pct" json:"allocation_pct"`
	Notes         string  `csv:"notes" json:"notes"`
}
