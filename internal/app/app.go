package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/catalog"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/customer"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/order"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/session"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/storage/snapshot"
)

// Run creates all dependencies, loads the catalog snapshot, and drives the
// interactive session until it ends. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	ctx = zctx.Base(ctx, lg)

	store := snapshot.New(cfg.SnapshotPath)
	products, err := store.Load()
	if err != nil {
		return errors.Wrap(err, "load snapshot")
	}

	cat := catalog.New()
	for i := range products {
		if err := cat.Add(&products[i]); err != nil {
			// Legacy snapshots may carry duplicate or invalid records; skip
			// them instead of refusing to start.
			lg.Warn("skipping snapshot record",
				zap.String("name", products[i].Name),
				zap.Error(err),
			)
		}
	}
	lg.Info("catalog loaded",
		zap.String("path", store.Path()),
		zap.Int("products", cat.Len()),
	)

	customers := customer.NewRegistry()
	ledger := order.NewLedger()

	sess := session.New(os.Stdin, os.Stdout, cat, customers, ledger, store)
	return sess.Run(ctx)
}
