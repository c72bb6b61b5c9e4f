package domain

// IDGenerator produces new identifiers for aggregates and transactions.
type IDGenerator[T any] func() T
