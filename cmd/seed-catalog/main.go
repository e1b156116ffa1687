// Command seed-catalog writes a small sample catalog snapshot so the store
// can be tried out without adding products by hand.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/catalog"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/storage/snapshot"
)

func main() {
	var (
		snapshotPath string
		force        bool
	)

	flag.StringVar(&snapshotPath, "snapshot", "products.json", "path to write the sample snapshot")
	flag.BoolVar(&force, "force", false, "overwrite an existing snapshot")
	flag.Parse()

	if err := run(snapshotPath, force); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("snapshot %s already exists, use -force to overwrite", path)
		}
	}

	products := []catalog.Product{
		{Name: "Black Coffee", Price: decimal.RequireFromString("2.00"), Stock: 60},
		{Name: "Milk Tea", Price: decimal.RequireFromString("3.50"), Stock: 40},
		{Name: "Green Tea", Price: decimal.RequireFromString("1.75"), Stock: 50},
		{Name: "Mango Smoothie", Price: decimal.RequireFromString("4.25"), Stock: 25},
	}

	if err := snapshot.New(path).Save(products); err != nil {
		return errors.Wrap(err, "write snapshot")
	}

	slog.Info("wrote sample catalog",
		slog.String("path", path),
		slog.Int("products", len(products)),
	)
	return nil
}
