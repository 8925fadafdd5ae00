// internal/common/database/neo4j.go
package database

import (
	"context"

	"github.com/Pjezz/carmatch/internal/common/config"
	"github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/common/logger"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jClient wraps the bolt driver
type Neo4jClient struct {
	Driver neo4j.DriverWithContext
	// Username that succeeded during connection, kept for diagnostics
	Username string
}

// NewNeo4j connects to the graph database. The configured credentials are
// tried in order and the first pair that verifies connectivity wins.
func NewNeo4j(ctx context.Context, cfg config.Neo4jConfig, log logger.Logger) (*Neo4jClient, error) {
	var lastErr error

	for _, cred := range cfg.Credentials {
		driver, err := neo4j.NewDriverWithContext(
			cfg.URI,
			neo4j.BasicAuth(cred.Username, cred.Password, ""),
		)
		if err != nil {
			lastErr = err
			continue
		}

		if err := driver.VerifyConnectivity(ctx); err != nil {
			lastErr = err
			_ = driver.Close(ctx)
			log.Debug("Neo4j credential attempt failed", map[string]interface{}{
				"uri":      cfg.URI,
				"username": cred.Username,
			})
			continue
		}

		log.Info("Connected to Neo4j", map[string]interface{}{
			"uri":      cfg.URI,
			"username": cred.Username,
		})

		return &Neo4jClient{Driver: driver, Username: cred.Username}, nil
	}

	return nil, errors.NewStoreAuthFailedError(len(cfg.Credentials), lastErr)
}

// Ping verifies the connection is still usable
func (c *Neo4jClient) Ping(ctx context.Context) error {
	return c.Driver.VerifyConnectivity(ctx)
}

// Close releases the driver and its connection pool
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c.Driver != nil {
		return c.Driver.Close(ctx)
	}
	return nil
}

// Session opens a read session against the default database
func (c *Neo4jClient) Session(ctx context.Context) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
}

// WriteSession opens a write session against the default database
func (c *Neo4jClient) WriteSession(ctx context.Context) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}
