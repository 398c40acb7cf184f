package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-social/pkg/types"
)

// Dataset is a portable snapshot of a community: people, ordered friend
// lists, application data and activities in insertion order.
type Dataset struct {
	People     []types.Person               `yaml:"people" json:"people"`
	Friends    map[string][]string          `yaml:"friends" json:"friends"`
	AppData    map[string]map[string]string `yaml:"app_data" json:"appData"`
	Activities []types.Activity             `yaml:"activities" json:"activities"`
}

// Seed loads the dataset into the store. Activities without an id receive
// generated ids in dataset order.
func (m *Memory) Seed(ctx context.Context, ds Dataset) error {
	for _, person := range ds.People {
		if err := m.AddPerson(ctx, person); err != nil {
			return fmt.Errorf("seed person %q: %w", person.ID, err)
		}
	}
	for _, id := range sortedKeys(ds.Friends) {
		if err := m.SetFriends(ctx, id, ds.Friends[id]); err != nil {
			return fmt.Errorf("seed friends of %q: %w", id, err)
		}
	}
	for _, id := range sortedKeys(ds.AppData) {
		if err := m.UpdateAppData(ctx, id, ds.AppData[id]); err != nil {
			return fmt.Errorf("seed app data of %q: %w", id, err)
		}
	}
	for _, activity := range ds.Activities {
		if _, err := m.AddActivity(ctx, activity); err != nil {
			return fmt.Errorf("seed activity %q: %w", activity.ID, err)
		}
	}
	return nil
}

// Snapshot exports the current contents of the store. People are sorted by
// id; activities keep insertion order.
func (m *Memory) Snapshot(_ context.Context) Dataset {
	ds := Dataset{
		Friends: make(map[string][]string),
		AppData: make(map[string]map[string]string),
	}

	m.mu.RLock()
	for _, person := range m.people {
		ds.People = append(ds.People, person.Clone())
	}
	for id, friends := range m.friends {
		ds.Friends[id] = append([]string(nil), friends...)
	}
	m.mu.RUnlock()
	sort.Slice(ds.People, func(i, j int) bool { return ds.People[i].ID < ds.People[j].ID })

	m.dataMu.Lock()
	entries := make(map[string]*dataEntry, len(m.appData))
	for id, e := range m.appData {
		entries[id] = e
	}
	m.dataMu.Unlock()
	for id, e := range entries {
		e.mu.Lock()
		values := make(map[string]string, len(e.values))
		for k, v := range e.values {
			values[k] = v
		}
		e.mu.Unlock()
		ds.AppData[id] = values
	}

	m.actMu.RLock()
	for _, id := range m.order {
		ds.Activities = append(ds.Activities, m.activities[id])
	}
	m.actMu.RUnlock()
	return ds
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
