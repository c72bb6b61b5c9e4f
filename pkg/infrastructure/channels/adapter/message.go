package adapter

// dynamicCommand reconstructs a Command from a transported payload.
type dynamicCommand[T any] struct {
	commandName string
	payload     T
}

func (c *dynamicCommand[T]) CommandName() string { return c.commandName }
func (c *dynamicCommand[T]) Payload() T          { return c.payload }

type dynamicQuery[T any] struct {
	queryName string
	payload   T
}

func (q *dynamicQuery[T]) QueryName() string { return q.queryName }
func (q *dynamicQuery[T]) Payload() T        { return q.payload }

type dynamicEvent[T any] struct {
	eventName string
	payload   T
}

func (e *dynamicEvent[T]) EventName() string { return e.eventName }
func (e *dynamicEvent[T]) Payload() T        { return e.payload }
