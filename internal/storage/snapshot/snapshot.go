// Package snapshot persists the product catalog as a flat JSON file: an
// array of {name, price, stock} records. Saving is a full overwrite of the
// previous snapshot; there is no merge and no partial-write protection.
package snapshot

import (
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/catalog"
)

// Store reads and writes catalog snapshots at a fixed path. Paths ending in
// ".gz" are compressed transparently.
type Store struct {
	path string
}

// New returns a store bound to the given snapshot path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) compressed() bool {
	return strings.HasSuffix(s.path, ".gz")
}

// Load reads the snapshot and returns the recorded products in file order.
// A missing file is not an error: the catalog simply starts empty. Malformed
// content is an error.
func (s *Store) Load() ([]catalog.Product, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "open snapshot")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if s.compressed() {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}

	products, err := decodeProducts(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode snapshot %s", s.path)
	}
	return products, nil
}

// Save overwrites the snapshot with the given products, preserving their
// order.
func (s *Store) Save(products []catalog.Product) error {
	data := encodeProducts(products)

	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrap(err, "create snapshot")
	}
	defer func() { _ = f.Close() }()

	var w io.Writer = f
	var gz *pgzip.Writer
	if s.compressed() {
		gz = pgzip.NewWriter(f)
		w = gz
	}

	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return errors.Wrap(err, "flush gzip stream")
		}
	}

	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close snapshot")
	}
	return nil
}

func encodeProducts(products []catalog.Product) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, p := range products {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(p.Name)
		e.FieldStart("price")
		e.Num(jx.Num(p.Price.String()))
		e.FieldStart("stock")
		e.Int(p.Stock)
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.Bytes()
}

func decodeProducts(data []byte) ([]catalog.Product, error) {
	var products []catalog.Product

	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var p catalog.Product
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "name":
				name, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "name")
				}
				p.Name = name
			case "price":
				num, err := d.Num()
				if err != nil {
					return errors.Wrap(err, "price")
				}
				price, err := decimal.NewFromString(string(num))
				if err != nil {
					return errors.Wrap(err, "parse price")
				}
				p.Price = price
			case "stock":
				stock, err := d.Int()
				if err != nil {
					return errors.Wrap(err, "stock")
				}
				p.Stock = stock
			default:
				return d.Skip()
			}
			return nil
		}); err != nil {
			return errors.Wrap(err, "record")
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, err
	}

	return products, nil
}
