package config

import "time"

const defaultPingTimeout = 5 * time.Second

// PersistenceConfig implements persistence.Config for the configured DSN.
type PersistenceConfig struct {
	Debug          bool
	Driver         string
	Server         string
	PingTimeout    time.Duration
	OtelIdentifier string
}

func (c PersistenceConfig) GetDebug() bool                { return c.Debug }
func (c PersistenceConfig) GetDriver() string             { return c.Driver }
func (c PersistenceConfig) GetServer() string             { return c.Server }
func (c PersistenceConfig) GetPingTimeout() time.Duration { return c.PingTimeout }
func (c PersistenceConfig) GetOtelIdentifier() string     { return c.OtelIdentifier }

// NewPersistenceConfig builds the persistence settings for a DSN. Query
// debugging is only switched on in development.
func NewPersistenceConfig(env, dsn string) (PersistenceConfig, error) {
	driver, conn, err := ParseDSN(dsn)
	if err != nil {
		return PersistenceConfig{}, err
	}
	return PersistenceConfig{
		Debug:          env == "development",
		Driver:         driver,
		Server:         conn,
		PingTimeout:    defaultPingTimeout,
		OtelIdentifier: "go-social",
	}, nil
}

// Persistence returns the persistence settings for the configured DSN.
func (c *Config) Persistence() (PersistenceConfig, error) {
	return NewPersistenceConfig(c.Env, c.DSN)
}
