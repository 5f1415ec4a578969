package usecase

import (
	"context"

	"go.uber.org/zap"

	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/recommender"
)

// CatalogAppender extends the problem catalog on disk.
type CatalogAppender interface {
	Append(rows []catalog.Row) (int, error)
	Load() ([]catalog.Row, error)
}

// CatalogNotifier is told when the catalog changed; a nil hub satisfies it.
type CatalogNotifier interface {
	NotifyCatalogUpdated(appended, total int)
}

type Append struct {
	store    CatalogAppender
	engine   *recommender.Engine
	notifier CatalogNotifier
	log      *zap.Logger
}

func NewAppendUsecase(store CatalogAppender, engine *recommender.Engine, notifier CatalogNotifier, log *zap.Logger) *Append {
	if log == nil {
		log = zap.NewNop()
	}
	return &Append{store: store, engine: engine, notifier: notifier, log: log}
}

// Append adds new problems to the catalog, refits the vector space over the
// extended corpus, and notifies websocket subscribers. Rows whose titles are
// already present are skipped; appending zero rows is not an error.
func (u *Append) Append(_ context.Context, rows []catalog.Row) (int, error) {
	count, err := u.store.Append(rows)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		if err := u.engine.Fit(); err != nil {
			u.log.Warn("refit after append failed", zap.Error(err))
		}
	}

	if u.notifier != nil && count > 0 {
		total := 0
		if all, err := u.store.Load(); err == nil {
			total = len(all)
		}
		u.notifier.NotifyCatalogUpdated(count, total)
	}

	u.log.Info("catalog append", zap.Int("appended", count))
	return count, nil
}
