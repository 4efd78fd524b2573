package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Message is consumed by controllers in a Loop.
type Message interface {
	// NewMessage creates an empty message of the same type.
	NewMessage() Message
}

// Controller is invoked once per Loop iteration.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc is the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}

// ControlContext is the context of the current iteration.
type ControlContext interface {
	// Context retrieves context.Context.
	Context() context.Context
	// Time is when the iteration started.
	Time() time.Time
	// PriorityLevel is the level of the running controller.
	PriorityLevel() int
	// Messages are the ones posted before the iteration started.
	// Messages not taken are dropped after the iteration.
	Messages() MessageStore

	LoopControl
}

// LoopControl exposes access to the running Loop.
type LoopControl interface {
	// PostMessage enqueues the message for the next iteration.
	PostMessage(Message)
	// TriggerNext runs the next iteration without waiting for the interval.
	TriggerNext()
}

// MessageStore provides access to the messages of an iteration.
type MessageStore interface {
	ProcessMessages(MessageProcessor)
}

// MessageProcessor is used by MessageStore to process messages.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext provides context for the current message.
type MessageProcessingContext interface {
	// CurrentMessage gets the message being processed.
	CurrentMessage() Message
	// MessageTaken removes the message from the store.
	MessageTaken()
	// StopProcessing skips the rest of messages.
	StopProcessing()
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 8

// Predefined priority levels, lower runs first.
const (
	PrLvTop  int = 0
	PrLvIdle int = PriorityLevels - 1

	// PrLvCommand is for controllers processing commands.
	PrLvCommand = 2
	// PrLvNotify is for controllers publishing events.
	PrLvNotify = 4
)
