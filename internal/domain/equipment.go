package domain

// Equipment is a rentable product type with a finite stock of physical units.
// Prices are whole CZK per day, resolved by rental-length tier.
type Equipment struct {
	ID             int32    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price1To3Days  int32    `json:"price1to3Days"`
	Price4To7Days  int32    `json:"price4to7Days"`
	Price8PlusDays int32    `json:"price8PlusDays"`
	Deposit        int32    `json:"deposit"`
	Stock          int32    `json:"stock"`
	ImageURL       string   `json:"imageUrl"`
	SortOrder      int32    `json:"sortOrder"`
	Categories     []string `json:"categories"`
}

// SortOrderUpdate is one entry of an admin reorder request.
type SortOrderUpdate struct {
	ID        int32 `json:"id"`
	SortOrder int32 `json:"sortOrder"`
}
