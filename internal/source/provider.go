// Package source holds the external data providers the pipeline fans out
// to. Each provider fetches raw mentions for a query from one upstream
// service; providers are independent and individually failable.
package source

import (
	"context"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Provider fetches raw mentions for one source type. Fetch honors the
// passed context deadline and returns whatever it collected; an error
// means the source contributed nothing this run, never that the run
// failed.
type Provider interface {
	Type() model.SourceType
	Fetch(ctx context.Context, query string) ([]model.RawMention, error)
}
