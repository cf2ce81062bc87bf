// Package event is the in-process notification bus.
//
// The platform this service reimplements broadcast ambient DOM events so
// independently-rendered views stayed consistent within one session. Here
// that becomes an explicit bus: services publish, views (or anything else)
// subscribe. Delivery is synchronous and in-order — there is no queue and
// no cross-process fan-out.
package event

import (
	"sync"

	"github.com/sakif/hackhub/internal/model"
)

// Topic names one kind of notification. The five topics and their payload
// shapes are fixed; subscribers rely on them.
type Topic string

const (
	SignedIn        Topic = "userSignedIn"     // payload: model.Session
	SignedOut       Topic = "userSignedOut"    // payload: nil
	ProfileUpdated  Topic = "profileUpdated"   // payload: model.Profile
	UserDataUpdated Topic = "userDataUpdated"  // payload: model.UserData
	DeadlinesUpdate Topic = "deadlinesUpdated" // payload: DeadlinesPayload
)

// DeadlinesPayload identifies which community's deadline list changed.
type DeadlinesPayload struct {
	CommunityID string           `json:"communityId"`
	Deadlines   []model.Deadline `json:"deadlines"`
}

// Event is one published notification.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler receives published events. Handlers run on the publisher's
// goroutine; keep them short.
type Handler func(Event)

// Bus fans events out to subscribers by topic.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic]map[int]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]Handler)}
}

// Subscribe registers fn for a topic and returns an unsubscribe func.
func (b *Bus) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[topic][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish delivers the event to every current subscriber of its topic.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, fn := range b.subs[topic] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	for _, fn := range handlers {
		fn(ev)
	}
}
