package model

// Customer owns the credit the saga debits. Creation and LastModification
// are epoch milliseconds.
type Customer struct {
	ID               string
	IdempotencyKey   string
	Name             string
	Credit           float64
	Creation         int64
	LastModification int64
}

// Product owns the stock the saga decrements.
type Product struct {
	ID               string
	IdempotencyKey   string
	Name             string
	Price            float64
	Quantity         int64
	Creation         int64
	LastModification int64
}
