// Package store holds the in-memory Store backing the collection services.
package store

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-social/pkg/types"
)

// Memory is an in-memory implementation of types.Store. The person graph and
// the activity log each have their own lock, while every person's application
// data carries a dedicated mutex so writers for different people never
// contend.
type Memory struct {
	mu      sync.RWMutex
	people  map[string]types.Person
	friends map[string][]string

	dataMu  sync.Mutex
	appData map[string]*dataEntry

	actMu      sync.RWMutex
	activities map[string]types.Activity
	order      []string
	nextID     uint64
}

type dataEntry struct {
	mu     sync.Mutex
	values map[string]string
}

var _ types.Store = (*Memory)(nil)

// NewMemory provisions an empty store. Generated activity ids start at 1.
func NewMemory() *Memory {
	return &Memory{
		people:     make(map[string]types.Person),
		friends:    make(map[string][]string),
		appData:    make(map[string]*dataEntry),
		activities: make(map[string]types.Activity),
		nextID:     1,
	}
}

// AddPerson registers or replaces a person.
func (m *Memory) AddPerson(_ context.Context, person types.Person) error {
	id := strings.TrimSpace(person.ID)
	if id == "" {
		return types.ErrUserRefRequired
	}
	person.ID = id
	m.mu.Lock()
	m.people[id] = person.Clone()
	m.mu.Unlock()
	return nil
}

// SetFriends replaces the ordered friend list of a person. Friend ids that do
// not match a stored person are kept but skipped on read.
func (m *Memory) SetFriends(_ context.Context, personID string, friendIDs []string) error {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return types.ErrUserRefRequired
	}
	m.mu.Lock()
	m.friends[personID] = append([]string(nil), friendIDs...)
	m.mu.Unlock()
	return nil
}

// FindPerson implements types.PersonRepository.
func (m *Memory) FindPerson(_ context.Context, id string) (*types.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	person, ok := m.people[id]
	if !ok {
		return nil, nil
	}
	clone := person.Clone()
	return &clone, nil
}

// FriendsOf implements types.PersonRepository.
func (m *Memory) FriendsOf(_ context.Context, id string) ([]types.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.friends[id]
	out := make([]types.Person, 0, len(ids))
	for _, friendID := range ids {
		if person, ok := m.people[friendID]; ok {
			out = append(out, person.Clone())
		}
	}
	return out, nil
}

func (m *Memory) entry(id string, create bool) *dataEntry {
	m.dataMu.Lock()
	defer m.dataMu.Unlock()
	e, ok := m.appData[id]
	if !ok && create {
		e = &dataEntry{values: make(map[string]string)}
		m.appData[id] = e
	}
	return e
}

// AppDataOf implements types.AppDataRepository.
func (m *Memory) AppDataOf(_ context.Context, id string) (map[string]string, error) {
	e := m.entry(id, false)
	if e == nil {
		return map[string]string{}, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out, nil
}

// UpdateAppData implements types.AppDataRepository.
func (m *Memory) UpdateAppData(_ context.Context, id string, values map[string]string) error {
	e := m.entry(id, true)
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range values {
		e.values[k] = v
	}
	return nil
}

// DeleteAppData implements types.AppDataRepository.
func (m *Memory) DeleteAppData(_ context.Context, id string, keys []string) error {
	e := m.entry(id, false)
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, key := range keys {
		delete(e.values, key)
	}
	return nil
}

// AddActivity implements types.ActivityRepository. Blank ids receive the next
// counter value; generated ids skip values already taken by explicit ids.
func (m *Memory) AddActivity(_ context.Context, activity types.Activity) (types.Activity, error) {
	m.actMu.Lock()
	defer m.actMu.Unlock()
	activity.ID = strings.TrimSpace(activity.ID)
	if activity.ID == "" {
		activity.ID = m.generateIDLocked()
	}
	if _, exists := m.activities[activity.ID]; !exists {
		m.order = append(m.order, activity.ID)
	}
	m.activities[activity.ID] = activity
	return activity, nil
}

func (m *Memory) generateIDLocked() string {
	for {
		id := strconv.FormatUint(m.nextID, 10)
		m.nextID++
		if _, taken := m.activities[id]; !taken {
			return id
		}
	}
}

// FindActivity implements types.ActivityRepository.
func (m *Memory) FindActivity(_ context.Context, id string) (*types.Activity, error) {
	m.actMu.RLock()
	defer m.actMu.RUnlock()
	activity, ok := m.activities[id]
	if !ok {
		return nil, nil
	}
	return &activity, nil
}

// ActivitiesOf implements types.ActivityRepository.
func (m *Memory) ActivitiesOf(_ context.Context, personID string) ([]types.Activity, error) {
	m.actMu.RLock()
	defer m.actMu.RUnlock()
	out := make([]types.Activity, 0)
	for _, id := range m.order {
		if activity := m.activities[id]; activity.UserID == personID {
			out = append(out, activity)
		}
	}
	return out, nil
}

// DeleteActivities implements types.ActivityRepository.
func (m *Memory) DeleteActivities(_ context.Context, personID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	m.actMu.Lock()
	defer m.actMu.Unlock()
	removed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		activity, ok := m.activities[id]
		if !ok || activity.UserID != personID {
			continue
		}
		delete(m.activities, id)
		removed[id] = struct{}{}
	}
	if len(removed) == 0 {
		return 0, nil
	}
	kept := m.order[:0]
	for _, id := range m.order {
		if _, gone := removed[id]; !gone {
			kept = append(kept, id)
		}
	}
	m.order = kept
	return len(removed), nil
}
