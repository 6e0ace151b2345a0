package models

type Supplier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Category    string `json:"category"`
}

type SupplierDraft struct {
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Category    string
}
