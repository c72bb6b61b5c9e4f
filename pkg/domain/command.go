package domain

// Command carries the intent to mutate state, together with its payload.
type Command[T any] interface {
	CommandName() string
	Payload() T
}
