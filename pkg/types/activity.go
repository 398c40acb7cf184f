package types

import (
	"strings"
	"time"
)

// Activity is a timestamped event posted by a person, optionally scoped to an
// application.
type Activity struct {
	ID       string    `json:"id" yaml:"id,omitempty"`
	UserID   string    `json:"userId" yaml:"user_id"`
	AppID    string    `json:"appId,omitempty" yaml:"app_id,omitempty"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Body     string    `json:"body,omitempty" yaml:"body,omitempty"`
	URL      string    `json:"url,omitempty" yaml:"url,omitempty"`
	PostedAt time.Time `json:"postedTime,omitempty" yaml:"posted_at,omitempty"`
}

// MatchesApp reports whether the activity passes an application filter. A
// blank filter accepts everything and activities without an app id pass any
// filter. Whitespace around either id is ignored.
func (a Activity) MatchesApp(appID string) bool {
	appID = strings.TrimSpace(appID)
	own := strings.TrimSpace(a.AppID)
	if appID == "" || own == "" {
		return true
	}
	return own == appID
}
