package dto

// IncomeDTO represents an income ledger entry for business reporting
type IncomeDTO struct {
	Price       float64 `json:"price"`
	ClientName  string  `json:"client_name"`
	ClientEmail string  `json:"client_email"`
	AdName      string  `json:"ad_name"`
	AdImgURL    string  `json:"ad_img_url"`
}

// ListIncomesResponse represents the income listing response
type ListIncomesResponse struct {
	Incomes []IncomeDTO `json:"incomes"`
	Total   int         `json:"total"`
	Sum     float64     `json:"sum"`
}
