package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geobiz/internal/model"
	"github.com/sells-group/geobiz/internal/provider"
	"github.com/sells-group/geobiz/internal/search"
)

// searcher is the part of search.Service the commands depend on.
type searcher interface {
	Search(ctx context.Context, q model.Query) (*model.SearchResponse, error)
}

// initService validates the config for mode and builds the search service
// for the configured provider.
func initService(mode string) (*search.Service, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	p, err := provider.New(cfg)
	if err != nil {
		return nil, eris.Wrap(err, "init provider")
	}

	zap.L().Debug("search service ready", zap.String("provider", p.Name()))
	return search.NewService(p), nil
}
