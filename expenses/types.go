package expenses

// Expense represents money spent, optionally against a budget or for a gift.
type Expense struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	BudgetID    string  `json:"budgetId"`
	GiftID      string  `json:"giftId"`
	Date        string  `json:"date"` // YYYY-MM-DD
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// AddExpensePayload defines the structure for the add expense request body.
// Nil fields take their defaults; explicit zero values are kept.
type AddExpensePayload struct {
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	BudgetID    *string  `json:"budgetId"`
	GiftID      *string  `json:"giftId"`
	Date        *string  `json:"date"`
}
