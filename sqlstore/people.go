package sqlstore

import (
	"context"
	"errors"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-social/pkg/types"
)

// PeopleRepositoryConfig wires the Bun-backed people repository.
type PeopleRepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*PersonRecord]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type peopleStore interface {
	repository.Repository[*PersonRecord]
}

// PeopleRepository stores people rows. Lookups go by the community person id,
// the uuid primary key is internal to the table.
type PeopleRepository struct {
	peopleStore
	clock types.Clock
	idGen types.IDGenerator
}

// NewPeopleRepository constructs the default people repository.
func NewPeopleRepository(cfg PeopleRepositoryConfig, opts ...RepositoryOption) (*PeopleRepository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("sqlstore: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*PersonRecord]{
			NewRecord: func() *PersonRecord { return &PersonRecord{} },
			GetID: func(rec *PersonRecord) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *PersonRecord, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}

	options := applyRepositoryOptions(opts)
	if options.CacheEnabled {
		if _, cached := repo.(*repositorycache.CachedRepository[*PersonRecord]); !cached {
			cfgCache := cache.DefaultConfig()
			if options.CacheConfig != nil {
				cfgCache = *options.CacheConfig
			}
			service, err := cache.NewCacheService(cfgCache)
			if err != nil {
				return nil, err
			}
			repo = repositorycache.New(repo, service, cache.NewDefaultKeySerializer())
		}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}

	return &PeopleRepository{
		peopleStore: repo,
		clock:       clock,
		idGen:       idGen,
	}, nil
}

var _ repository.Repository[*PersonRecord] = (*PeopleRepository)(nil)

// ListPeople returns every stored person ordered by person id.
func (r *PeopleRepository) ListPeople(ctx context.Context) ([]types.Person, error) {
	rows, _, err := r.List(ctx, orderByPersonID)
	if err != nil {
		return nil, err
	}
	out := make([]types.Person, 0, len(rows))
	for _, row := range rows {
		out = append(out, personToDomain(row))
	}
	return out, nil
}

// FindPerson returns the person with the given id, or nil when absent.
func (r *PeopleRepository) FindPerson(ctx context.Context, id string) (*types.Person, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, types.ErrUserRefRequired
	}
	rec, err := r.Get(ctx, selectPersonID(id))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	person := personToDomain(rec)
	return &person, nil
}

// SavePerson inserts the person or updates the existing row with the same
// person id. The original creation time is kept on update.
func (r *PeopleRepository) SavePerson(ctx context.Context, person types.Person) (types.Person, error) {
	person.ID = strings.TrimSpace(person.ID)
	if person.ID == "" {
		return types.Person{}, types.ErrUserRefRequired
	}
	rec := personFromDomain(person)

	existing, err := r.Get(ctx, selectPersonID(person.ID))
	switch {
	case err == nil:
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = r.clock.Now()
		}
		updated, err := r.Update(ctx, rec)
		if err != nil {
			return types.Person{}, err
		}
		return personToDomain(updated), nil
	case repository.IsRecordNotFound(err):
		rec.ID = r.idGen.UUID()
		rec.CreatedAt = r.clock.Now()
		created, err := r.Create(ctx, rec)
		if err != nil {
			return types.Person{}, err
		}
		return personToDomain(created), nil
	default:
		return types.Person{}, err
	}
}

func selectPersonID(id string) repository.SelectCriteria {
	return repository.SelectBy("person_id", "=", id)
}

func orderByPersonID(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("person_id ASC")
}
