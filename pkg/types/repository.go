package types

import "context"

// PersonRepository exposes the community graph.
type PersonRepository interface {
	// FindPerson returns nil without error when the person does not exist.
	FindPerson(ctx context.Context, id string) (*Person, error)
	// FriendsOf returns the friends of a person in stored order. Unknown
	// persons have no friends.
	FriendsOf(ctx context.Context, id string) ([]Person, error)
}

// AppDataRepository stores per-person key/value application data.
type AppDataRepository interface {
	// AppDataOf returns a snapshot of the person's data; absent entries read
	// as an empty map.
	AppDataOf(ctx context.Context, id string) (map[string]string, error)
	// UpdateAppData upserts the values, creating the entry when needed.
	UpdateAppData(ctx context.Context, id string, values map[string]string) error
	// DeleteAppData removes the keys; absent keys are ignored.
	DeleteAppData(ctx context.Context, id string, keys []string) error
}

// ActivityRepository stores posted activities.
type ActivityRepository interface {
	// AddActivity stores the activity, assigning an id when blank, and returns
	// the stored copy.
	AddActivity(ctx context.Context, activity Activity) (Activity, error)
	// FindActivity returns nil without error when the id is unknown.
	FindActivity(ctx context.Context, id string) (*Activity, error)
	// ActivitiesOf returns the activities posted by a person in insertion
	// order.
	ActivitiesOf(ctx context.Context, personID string) ([]Activity, error)
	// DeleteActivities removes the listed activities owned by the person and
	// reports how many were removed.
	DeleteActivities(ctx context.Context, personID string, ids []string) (int, error)
}

// Store aggregates every repository contract backed by a single data source.
type Store interface {
	PersonRepository
	AppDataRepository
	ActivityRepository
}
