package migrations

import (
	"io/fs"

	social "github.com/goliatone/go-social"
)

func init() {
	coreFS, err := fs.Sub(social.MigrationsFS, "data/sql/migrations")
	if err != nil {
		return
	}
	Register(coreFS)
}
