package sqlstore

import (
	"context"
	"testing"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-social/fixtures"
	"github.com/goliatone/go-social/migrations"
	"github.com/goliatone/go-social/pkg/config"
	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/store"
)

func TestRepository_SaveAndLoadSample(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo, err := New(Config{DB: db})
	require.NoError(t, err)

	mem, err := fixtures.SampleStore(ctx)
	require.NoError(t, err)
	snapshot := mem.Snapshot(ctx)
	require.NoError(t, repo.Save(ctx, snapshot))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.People, len(snapshot.People))
	for i := range snapshot.People {
		require.Equal(t, snapshot.People[i].ID, loaded.People[i].ID)
		require.Equal(t, snapshot.People[i].Name, loaded.People[i].Name)
		require.Equal(t, snapshot.People[i].Gender, loaded.People[i].Gender)
		require.Equal(t, snapshot.People[i].LanguagesSpoken, loaded.People[i].LanguagesSpoken)
		require.Equal(t, snapshot.People[i].Addresses, loaded.People[i].Addresses)
	}

	require.Equal(t, []string{"jane.doe", "george.doe", "maija.m", "mario.rossi"}, loaded.Friends["john.doe"])
	require.Equal(t, []string{"john.doe", "mario.rossi"}, loaded.Friends["jane.doe"])
	require.Equal(t, snapshot.AppData["john.doe"], loaded.AppData["john.doe"])
	require.Equal(t, snapshot.AppData["maija.m"], loaded.AppData["maija.m"])

	require.Len(t, loaded.Activities, 4)
	for i := range snapshot.Activities {
		require.Equal(t, snapshot.Activities[i].ID, loaded.Activities[i].ID)
		require.Equal(t, snapshot.Activities[i].Title, loaded.Activities[i].Title)
		require.Equal(t, snapshot.Activities[i].AppID, loaded.Activities[i].AppID)
	}
}

func TestRepository_SaveReplacesAndUpserts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo, err := New(Config{DB: db})
	require.NoError(t, err)

	posted := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := store.Dataset{
		People:  []types.Person{{ID: "john.doe", DisplayName: "007"}, {ID: "jane.doe"}},
		Friends: map[string][]string{"john.doe": {"jane.doe", "jane.doe"}},
		AppData: map[string]map[string]string{"john.doe": {"RANG": "8"}},
		Activities: []types.Activity{
			{ID: "1", UserID: "john.doe", AppID: "App1", Title: "First", PostedAt: posted},
		},
	}
	require.NoError(t, repo.Save(ctx, first))

	original, err := repo.People().FindPerson(ctx, "john.doe")
	require.NoError(t, err)
	require.Equal(t, "007", original.DisplayName)

	second := store.Dataset{
		People:  []types.Person{{ID: "john.doe", DisplayName: "James"}},
		AppData: map[string]map[string]string{"john.doe": {"HIGHSCORE": "1"}},
	}
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.People, 2)
	require.Equal(t, "jane.doe", loaded.People[0].ID)
	require.Equal(t, "James", loaded.People[1].DisplayName)
	require.Empty(t, loaded.Friends)
	require.Equal(t, map[string]string{"HIGHSCORE": "1"}, loaded.AppData["john.doe"])
	require.Empty(t, loaded.Activities)
}

func TestRepository_SaveDeduplicatesFriends(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo, err := New(Config{DB: db})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, store.Dataset{
		People:  []types.Person{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Friends: map[string][]string{"a": {"c", "b", "c"}},
	}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b"}, loaded.Friends["a"])
}

func TestRepository_SaveRequiresActivityIDs(t *testing.T) {
	db := newTestDB(t)
	repo, err := New(Config{DB: db})
	require.NoError(t, err)

	err = repo.Save(context.Background(), store.Dataset{
		Activities: []types.Activity{{UserID: "john.doe", Title: "no id"}},
	})
	require.ErrorIs(t, err, ErrActivityIDRequired)
}

func TestRepository_SaveRollsBackOnFailedWrite(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo, err := New(Config{DB: db})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, store.Dataset{
		People:     []types.Person{{ID: "john.doe", DisplayName: "007"}},
		Friends:    map[string][]string{"john.doe": {"jane.doe"}},
		Activities: []types.Activity{{ID: "1", UserID: "john.doe", Title: "First"}},
	}))

	err = repo.Save(ctx, store.Dataset{
		People: []types.Person{{ID: "john.doe", DisplayName: "James"}, {ID: "jane.doe"}},
		Activities: []types.Activity{
			{ID: "7", UserID: "john.doe", Title: "one"},
			{ID: "7", UserID: "jane.doe", Title: "clash"},
		},
	})
	require.Error(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.People, 1)
	require.Equal(t, "007", loaded.People[0].DisplayName)
	require.Equal(t, []string{"jane.doe"}, loaded.Friends["john.doe"])
	require.Len(t, loaded.Activities, 1)
	require.Equal(t, "First", loaded.Activities[0].Title)
}

func TestRepository_SaveRejectsBlankPersonIDs(t *testing.T) {
	db := newTestDB(t)
	repo, err := New(Config{DB: db})
	require.NoError(t, err)

	err = repo.Save(context.Background(), store.Dataset{People: []types.Person{{ID: "  "}}})
	require.ErrorIs(t, err, types.ErrUserRefRequired)
}

func TestPeopleRepository_ListPeopleSeesSavedRows(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo, err := New(Config{DB: db})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, store.Dataset{
		People: []types.Person{{ID: "mario.rossi"}, {ID: "jane.doe", DisplayName: "Jane"}},
	}))

	people, err := repo.People().ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	require.Equal(t, "jane.doe", people[0].ID)
	require.Equal(t, "Jane", people[0].DisplayName)
	require.Equal(t, "mario.rossi", people[1].ID)
}

func TestRepository_LoadIntoServesMemoryStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo, err := New(Config{DB: db})
	require.NoError(t, err)

	sample, err := fixtures.SampleStore(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sample.Snapshot(ctx)))

	mem := store.NewMemory()
	require.NoError(t, repo.LoadInto(ctx, mem))

	friends, err := mem.FriendsOf(ctx, "john.doe")
	require.NoError(t, err)
	require.Len(t, friends, 4)

	created, err := mem.AddActivity(ctx, types.Activity{UserID: "john.doe", Title: "next"})
	require.NoError(t, err)
	require.Equal(t, "5", created.ID)

	require.ErrorIs(t, repo.LoadInto(ctx, nil), types.ErrMissingStore)
}

func TestPeopleRepository_FindPerson(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo, err := NewPeopleRepository(PeopleRepositoryConfig{DB: db})
	require.NoError(t, err)

	birthday := time.Date(1968, 4, 13, 0, 0, 0, 0, time.UTC)
	saved, err := repo.SavePerson(ctx, types.Person{
		ID:       " john.doe ",
		Gender:   types.GenderMale,
		Birthday: &birthday,
		HasApp:   true,
	})
	require.NoError(t, err)
	require.Equal(t, "john.doe", saved.ID)

	found, err := repo.FindPerson(ctx, "john.doe")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.True(t, found.HasApp)
	require.Equal(t, types.GenderMale, found.Gender)
	require.NotNil(t, found.Birthday)
	require.True(t, birthday.Equal(*found.Birthday))

	missing, err := repo.FindPerson(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)

	_, err = repo.FindPerson(ctx, " ")
	require.ErrorIs(t, err, types.ErrUserRefRequired)
	_, err = repo.SavePerson(ctx, types.Person{})
	require.ErrorIs(t, err, types.ErrUserRefRequired)
}

func TestPeopleRepository_CacheWrapsRepository(t *testing.T) {
	db := newTestDB(t)

	repo, err := NewPeopleRepository(PeopleRepositoryConfig{DB: db}, WithCache(true))
	require.NoError(t, err)
	_, ok := repo.peopleStore.(*repositorycache.CachedRepository[*PersonRecord])
	require.True(t, ok)

	plain, err := NewPeopleRepository(PeopleRepositoryConfig{DB: db})
	require.NoError(t, err)
	_, ok = plain.peopleStore.(*repositorycache.CachedRepository[*PersonRecord])
	require.False(t, ok)
}

func TestPeopleRepository_CacheDoesNotDoubleWrap(t *testing.T) {
	db := newTestDB(t)
	base, err := NewPeopleRepository(PeopleRepositoryConfig{DB: db})
	require.NoError(t, err)

	service, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)
	var baseRepo repository.Repository[*PersonRecord] = base.peopleStore
	cached := repositorycache.New(baseRepo, service, cache.NewDefaultKeySerializer())

	repo, err := NewPeopleRepository(PeopleRepositoryConfig{Repository: cached}, WithCache(true))
	require.NoError(t, err)
	stored, ok := repo.peopleStore.(*repositorycache.CachedRepository[*PersonRecord])
	require.True(t, ok)
	require.Same(t, cached, stored)
}

func TestConstructorsRequireDB(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	_, err = NewPeopleRepository(PeopleRepositoryConfig{})
	require.Error(t, err)
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	cfg := config.PersistenceConfig{Driver: migrations.DialectSQLite, Server: ":memory:", PingTimeout: time.Second}
	db, err := migrations.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
