package domain

// MenuItem is a catalog entry from the menu. Price is kept as the API's
// decimal string; the client never does arithmetic on it.
type MenuItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}
