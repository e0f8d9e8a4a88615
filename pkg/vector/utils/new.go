// Package vectorutils is the vector store utility package
package vectorutils

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"

	"github.com/recruitkit/cvrag/pkg/vector"
	"github.com/recruitkit/cvrag/pkg/vector/qdrant"
	"github.com/recruitkit/cvrag/pkg/vector/sqlitevec"
)

type NewDriverOpts struct {
	ProviderType string

	// Target is provider-specific: "host:port" for qdrant, a database
	// path (or ":memory:") for sqlite.
	Target string

	APIKey     string
	Collection string
	Dimensions uint
}

func NewDriver(ctx context.Context, o *NewDriverOpts, logger *zap.Logger) (vector.Driver, error) {
	switch o.ProviderType {
	case "qdrant":
		host, port, err := splitHostPort(o.Target)
		if err != nil {
			return nil, fmt.Errorf("invalid qdrant target %q: %w", o.Target, err)
		}
		return qdrant.NewDriver(ctx, qdrant.Config{
			Host:       host,
			Port:       port,
			APIKey:     o.APIKey,
			Collection: o.Collection,
			Dimensions: o.Dimensions,
		}, logger)
	case "sqlite":
		return sqlitevec.NewDriver(sqlitevec.Config{
			DBPath:     o.Target,
			Dimensions: o.Dimensions,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}

// splitHostPort parses "host" or "host:port" targets. A bare host falls
// back to the driver's default port.
func splitHostPort(target string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		return target, 0, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}
