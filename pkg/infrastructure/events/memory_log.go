package events

import (
	"sync"
)

// InMemoryEventLog keeps per-stream event slices under a mutex.
// Handlers are notified synchronously on Append so a cycle's event
// trail is complete when RunCycle returns.
type InMemoryEventLog struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	allEvents   []Event
	mutex       sync.RWMutex
}

var _ EventLog = (*InMemoryEventLog)(nil)

func NewInMemoryEventLog() *InMemoryEventLog {
	return &InMemoryEventLog{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
	}
}

func (l *InMemoryEventLog) Append(streamID string, event Event) error {
	l.mutex.Lock()

	versioned := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(l.streams[streamID]) + 1,
	}

	l.streams[streamID] = append(l.streams[streamID], versioned)
	l.allEvents = append(l.allEvents, versioned)
	handlers := l.subscribers[versioned.EventType]
	l.mutex.Unlock()

	for _, handler := range handlers {
		if handler.CanHandle(versioned.EventType) {
			if err := handler.Handle(versioned); err != nil {
				return err
			}
		}
	}

	return nil
}

func (l *InMemoryEventLog) Read(streamID string, fromVersion int) ([]Event, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	stream, exists := l.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return []Event{}, nil
	}

	return stream[fromVersion-1:], nil
}

func (l *InMemoryEventLog) ReadAll(fromPosition int) ([]Event, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(l.allEvents) {
		return []Event{}, nil
	}

	return l.allEvents[fromPosition:], nil
}

func (l *InMemoryEventLog) Subscribe(eventTypes []string, handler EventHandler) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for _, eventType := range eventTypes {
		l.subscribers[eventType] = append(l.subscribers[eventType], handler)
	}

	return nil
}
