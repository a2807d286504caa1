package models

// Company represents one row of companies.csv.
type Company struct {
	ID     int    `csv:"company_id" json:"company_id"`
	Name   string `csv:"company_name" json:"company_name"`
	Sector string `csv:"sector" json:"sector"`
	Notes  string `csv:"notes" json:"notes"`
}
