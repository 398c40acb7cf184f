package sqlstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-social/pkg/types"
)

// PersonRecord models the social_people row.
type PersonRecord struct {
	bun.BaseModel `bun:"table:social_people"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid"`
	PersonID      string          `bun:"person_id"`
	DisplayName   string          `bun:"display_name"`
	FormattedName string          `bun:"formatted_name"`
	GivenName     string          `bun:"given_name"`
	FamilyName    string          `bun:"family_name"`
	Gender        string          `bun:"gender"`
	Birthday      *time.Time      `bun:"birthday"`
	HasApp        bool            `bun:"has_app"`
	Languages     []string        `bun:"languages,type:jsonb"`
	Addresses     []types.Address `bun:"addresses,type:jsonb"`
	CreatedAt     time.Time       `bun:"created_at"`
}

// FriendRecord models one ordered edge of a friend list.
type FriendRecord struct {
	bun.BaseModel `bun:"table:social_friends"`

	PersonID string `bun:"person_id,pk"`
	FriendID string `bun:"friend_id,pk"`
	Position int    `bun:"position"`
}

// AppDataRecord models one application data entry.
type AppDataRecord struct {
	bun.BaseModel `bun:"table:social_app_data"`

	PersonID string `bun:"person_id,pk"`
	Key      string `bun:"data_key,pk"`
	Value    string `bun:"data_value"`
}

// ActivityRecord models the social_activities row. Position preserves the
// insertion order of the store.
type ActivityRecord struct {
	bun.BaseModel `bun:"table:social_activities"`

	ID       string    `bun:"id,pk"`
	UserID   string    `bun:"user_id"`
	AppID    string    `bun:"app_id"`
	Title    string    `bun:"title"`
	Body     string    `bun:"body"`
	URL      string    `bun:"url"`
	PostedAt time.Time `bun:"posted_at,nullzero"`
	Position int       `bun:"position"`
}

func personToDomain(rec *PersonRecord) types.Person {
	if rec == nil {
		return types.Person{}
	}
	person := types.Person{
		ID:          rec.PersonID,
		DisplayName: rec.DisplayName,
		Name: types.Name{
			Formatted:  rec.FormattedName,
			GivenName:  rec.GivenName,
			FamilyName: rec.FamilyName,
		},
		Gender:          types.ParseGender(rec.Gender),
		Addresses:       rec.Addresses,
		LanguagesSpoken: rec.Languages,
		HasApp:          rec.HasApp,
	}
	if rec.Birthday != nil {
		b := rec.Birthday.UTC()
		person.Birthday = &b
	}
	return person.Clone()
}

func personFromDomain(person types.Person) *PersonRecord {
	clone := person.Clone()
	return &PersonRecord{
		PersonID:      clone.ID,
		DisplayName:   clone.DisplayName,
		FormattedName: clone.Name.Formatted,
		GivenName:     clone.Name.GivenName,
		FamilyName:    clone.Name.FamilyName,
		Gender:        string(clone.Gender),
		Birthday:      clone.Birthday,
		HasApp:        clone.HasApp,
		Languages:     clone.LanguagesSpoken,
		Addresses:     clone.Addresses,
	}
}

func activityToDomain(rec ActivityRecord) types.Activity {
	activity := types.Activity{
		ID:     rec.ID,
		UserID: rec.UserID,
		AppID:  rec.AppID,
		Title:  rec.Title,
		Body:   rec.Body,
		URL:    rec.URL,
	}
	if !rec.PostedAt.IsZero() {
		activity.PostedAt = rec.PostedAt.UTC()
	}
	return activity
}

func activityFromDomain(activity types.Activity, position int) ActivityRecord {
	return ActivityRecord{
		ID:       activity.ID,
		UserID:   activity.UserID,
		AppID:    activity.AppID,
		Title:    activity.Title,
		Body:     activity.Body,
		URL:      activity.URL,
		PostedAt: activity.PostedAt,
		Position: position,
	}
}
