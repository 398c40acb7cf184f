package fixtures

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-social/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestSampleCommunity(t *testing.T) {
	ds, err := Sample()
	require.NoError(t, err)

	require.Len(t, ds.People, 5)
	require.Equal(t, "john.doe", ds.People[0].ID)
	require.Equal(t, "James Bond", ds.People[0].Name.Formatted)
	require.Equal(t, types.GenderMale, ds.People[0].Gender)
	require.Equal(t, []string{"German", "English", "Spanish"}, ds.People[0].LanguagesSpoken)
	require.Equal(t, "Freiburg", ds.People[0].Addresses[0].Locality)
	require.Equal(t, types.GenderFemale, ds.People[1].Gender)

	require.Equal(t, []string{"jane.doe", "george.doe", "maija.m", "mario.rossi"}, ds.Friends["john.doe"])
	require.Empty(t, ds.Friends["maija.m"])
	require.Equal(t, "7534", ds.AppData["john.doe"]["APP_1.HIGHSCORE"])
	require.Len(t, ds.Activities, 4)
	require.Empty(t, ds.Activities[0].ID)
}

func TestSampleStoreAssignsActivityIDs(t *testing.T) {
	ctx := context.Background()
	mem, err := SampleStore(ctx)
	require.NoError(t, err)

	activity, err := mem.FindActivity(ctx, "4")
	require.NoError(t, err)
	require.Equal(t, "george.doe", activity.UserID)

	activities, err := mem.ActivitiesOf(ctx, "john.doe")
	require.NoError(t, err)
	require.Len(t, activities, 3)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("people:\n  - id: a\n    nickname: b\n"))
	require.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	ds, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, ds.People)
}

func TestEncodeRoundTrip(t *testing.T) {
	ds, err := Sample()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, ds))

	path := filepath.Join(t.TempDir(), "community.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, ds.Friends, loaded.Friends)
	require.Equal(t, ds.AppData, loaded.AppData)
	require.Len(t, loaded.People, len(ds.People))
}
