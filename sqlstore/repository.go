// Package sqlstore loads and persists community datasets in a SQL database
// through Bun. The in-memory store stays the serving layer; this package
// moves its contents to and from sqlite or postgres.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/store"
)

// ErrActivityIDRequired is returned by Save when an activity has no id.
// Datasets produced by store.Memory.Snapshot always carry ids.
var ErrActivityIDRequired = errors.New("sqlstore: activity id required")

// Config wires the dataset repository.
type Config struct {
	DB     *bun.DB
	People *PeopleRepository
	Clock  types.Clock
	IDGen  types.IDGenerator
	Logger types.Logger
}

// Repository reads and writes whole datasets.
type Repository struct {
	db     *bun.DB
	people *PeopleRepository
	logger types.Logger
}

// New constructs a dataset repository. Options apply to the people
// repository when one is not supplied.
func New(cfg Config, opts ...RepositoryOption) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("sqlstore: db required")
	}
	people := cfg.People
	if people == nil {
		var err error
		people, err = NewPeopleRepository(PeopleRepositoryConfig{
			DB:    cfg.DB,
			Clock: cfg.Clock,
			IDGen: cfg.IDGen,
		}, opts...)
		if err != nil {
			return nil, err
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &Repository{
		db:     cfg.DB,
		people: people,
		logger: logger,
	}, nil
}

// People exposes the people repository.
func (r *Repository) People() *PeopleRepository {
	return r.people
}

// Load reads the full dataset. The four tables are read concurrently and
// straight from the database, bypassing any people cache.
func (r *Repository) Load(ctx context.Context) (store.Dataset, error) {
	var (
		people     []*PersonRecord
		friends    []FriendRecord
		appData    []AppDataRecord
		activities []ActivityRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.NewSelect().
			Model(&people).
			Order("person_id ASC").
			Scan(gctx)
	})
	g.Go(func() error {
		return r.db.NewSelect().
			Model(&friends).
			Order("person_id ASC", "position ASC").
			Scan(gctx)
	})
	g.Go(func() error {
		return r.db.NewSelect().
			Model(&appData).
			Scan(gctx)
	})
	g.Go(func() error {
		return r.db.NewSelect().
			Model(&activities).
			Order("position ASC").
			Scan(gctx)
	})
	if err := g.Wait(); err != nil {
		return store.Dataset{}, fmt.Errorf("sqlstore: load: %w", err)
	}

	ds := store.Dataset{
		People:     make([]types.Person, 0, len(people)),
		Friends:    make(map[string][]string),
		AppData:    make(map[string]map[string]string),
		Activities: make([]types.Activity, 0, len(activities)),
	}
	for _, rec := range people {
		ds.People = append(ds.People, personToDomain(rec))
	}
	for _, edge := range friends {
		ds.Friends[edge.PersonID] = append(ds.Friends[edge.PersonID], edge.FriendID)
	}
	for _, entry := range appData {
		values, ok := ds.AppData[entry.PersonID]
		if !ok {
			values = make(map[string]string)
			ds.AppData[entry.PersonID] = values
		}
		values[entry.Key] = entry.Value
	}
	for _, rec := range activities {
		ds.Activities = append(ds.Activities, activityToDomain(rec))
	}

	r.logger.Debug("dataset loaded",
		"people", len(ds.People),
		"friend_edges", len(friends),
		"activities", len(ds.Activities),
	)
	return ds, nil
}

// LoadInto reads the dataset and seeds it into mem.
func (r *Repository) LoadInto(ctx context.Context, mem *store.Memory) error {
	if mem == nil {
		return types.ErrMissingStore
	}
	ds, err := r.Load(ctx)
	if err != nil {
		return err
	}
	return mem.Seed(ctx, ds)
}

// Save writes the dataset in a single transaction. People are upserted;
// friend lists, application data and activities replace what is stored.
// Duplicate friend ids keep their first position. When any write fails
// nothing is changed.
//
// People rows are written on the transaction rather than through the
// people repository, so a cached PeopleRepository may serve the previous
// rows until its entries expire.
func (r *Repository) Save(ctx context.Context, ds store.Dataset) error {
	activities := make([]ActivityRecord, 0, len(ds.Activities))
	for i, activity := range ds.Activities {
		if activity.ID == "" {
			return fmt.Errorf("%w: activity %d of %s", ErrActivityIDRequired, i, activity.UserID)
		}
		activities = append(activities, activityFromDomain(activity, i))
	}
	for _, person := range ds.People {
		if strings.TrimSpace(person.ID) == "" {
			return fmt.Errorf("sqlstore: save person: %w", types.ErrUserRefRequired)
		}
	}

	friends := friendRecords(ds.Friends)
	appData := appDataRecords(ds.AppData)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := r.savePeople(ctx, tx, ds.People); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*FriendRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*AppDataRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*ActivityRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return err
		}
		if len(friends) > 0 {
			if _, err := tx.NewInsert().Model(&friends).Exec(ctx); err != nil {
				return err
			}
		}
		if len(appData) > 0 {
			if _, err := tx.NewInsert().Model(&appData).Exec(ctx); err != nil {
				return err
			}
		}
		if len(activities) > 0 {
			if _, err := tx.NewInsert().Model(&activities).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("dataset save failed", err)
		return fmt.Errorf("sqlstore: save: %w", err)
	}
	r.logger.Info("dataset saved",
		"people", len(ds.People),
		"friend_edges", len(friends),
		"activities", len(activities),
	)
	return nil
}

// savePeople upserts people by person id. Existing rows keep their primary
// key and creation time.
func (r *Repository) savePeople(ctx context.Context, tx bun.Tx, people []types.Person) error {
	if len(people) == 0 {
		return nil
	}
	ids := make([]string, 0, len(people))
	for _, person := range people {
		ids = append(ids, strings.TrimSpace(person.ID))
	}
	var existing []*PersonRecord
	if err := tx.NewSelect().
		Model(&existing).
		Where("person_id IN (?)", bun.In(ids)).
		Scan(ctx); err != nil {
		return err
	}
	known := make(map[string]*PersonRecord, len(existing))
	for _, rec := range existing {
		known[rec.PersonID] = rec
	}

	for _, person := range people {
		person.ID = strings.TrimSpace(person.ID)
		rec := personFromDomain(person)
		if prior, ok := known[person.ID]; ok {
			rec.ID = prior.ID
			rec.CreatedAt = prior.CreatedAt
			if rec.CreatedAt.IsZero() {
				rec.CreatedAt = r.people.clock.Now()
			}
			if _, err := tx.NewUpdate().Model(rec).WherePK().Exec(ctx); err != nil {
				r.logger.Error("person save failed", err, "person", person.ID)
				return fmt.Errorf("person %q: %w", person.ID, err)
			}
			known[person.ID] = rec
			continue
		}
		rec.ID = r.people.idGen.UUID()
		rec.CreatedAt = r.people.clock.Now()
		if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
			r.logger.Error("person save failed", err, "person", person.ID)
			return fmt.Errorf("person %q: %w", person.ID, err)
		}
		known[person.ID] = rec
	}
	return nil
}

func friendRecords(friends map[string][]string) []FriendRecord {
	out := make([]FriendRecord, 0, len(friends))
	for personID, ids := range friends {
		seen := make(map[string]struct{}, len(ids))
		position := 0
		for _, friendID := range ids {
			if _, dup := seen[friendID]; dup {
				continue
			}
			seen[friendID] = struct{}{}
			out = append(out, FriendRecord{PersonID: personID, FriendID: friendID, Position: position})
			position++
		}
	}
	return out
}

func appDataRecords(data map[string]map[string]string) []AppDataRecord {
	out := make([]AppDataRecord, 0, len(data))
	for personID, values := range data {
		for key, value := range values {
			out = append(out, AppDataRecord{PersonID: personID, Key: key, Value: value})
		}
	}
	return out
}
