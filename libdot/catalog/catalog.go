package catalog

import (
	"runtime"
	"sync"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState

	gTourKeyPrefix, Fingerprint (hex) => TourRecord

Keys sort by fingerprint, so Select() returns records in fingerprint order.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
	gTourKeyPrefix   = []byte{0x01}
)

const (
	kMajorVers = 2024
	kMinorVers = 1
)

// catalog is a badger wrapper for a catalog of exported tours
type catalog struct {
	ctx        dotpath.CatalogContext
	mu         sync.Mutex
	readOnly   bool
	stateDirty bool
	state      dotpath.CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) a tour catalog and attaches it to ctx.
func OpenCatalog(ctx dotpath.CatalogContext, opts dotpath.CatalogOpts) (dotpath.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(dotpath.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %q", opts.DbPathName)
	}

	// Once the db is open, the catalog ctx is blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Errorf("catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Decode(val)
		})
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		stateBuf, err := cat.state.Encode()
		if err != nil {
			return err
		}
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err != nil {
		return errors.Wrap(err, "writing catalog state")
	}
	cat.stateDirty = false
	return nil
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}

	err := cat.flushState()
	if closeErr := cat.db.Close(); err == nil {
		err = closeErr
	}
	cat.db = nil
	cat.ctx.DetachCatalog(cat)
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumTours() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return cat.state.NumTours
}

func formTourKey(fingerprint string) []byte {
	key := make([]byte, 0, len(gTourKeyPrefix)+len(fingerprint))
	key = append(key, gTourKeyPrefix...)
	key = append(key, fingerprint...)
	return key
}

func (cat *catalog) TryAddTour(T dotpath.TourState) (bool, error) {
	if cat.readOnly {
		return false, dotpath.ErrCatalogReadOnly
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return false, dotpath.ErrCatalogClosed
	}

	rec := T.Export()
	tourKey := formTourKey(rec.Fingerprint)
	added := false

	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(tourKey)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		recBuf, err := rec.Encode()
		if err != nil {
			return err
		}
		if err = txn.Set(tourKey, recBuf); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, errors.Wrapf(err, "adding tour %s", rec.Fingerprint)
	}

	if added {
		cat.state.NumTours++
		cat.stateDirty = true
	}
	return added, nil
}

func (cat *catalog) Lookup(fingerprint string) (*dotpath.TourRecord, error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil, dotpath.ErrCatalogClosed
	}

	rec := &dotpath.TourRecord{}
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(formTourKey(fingerprint))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return decodeRecord(rec, val)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, dotpath.ErrTourNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeRecord(rec *dotpath.TourRecord, val []byte) error {
	if err := rec.Decode(val); err != nil {
		return errors.Wrap(dotpath.ErrBadRecord, err.Error())
	}
	return nil
}

// Select sends each stored record to onHit in fingerprint order.
//
// The catalog is locked for the duration, so onHit must be drained by another goroutine.
func (cat *catalog) Select(onHit dotpath.OnTourHit) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return dotpath.ErrCatalogClosed
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         gTourKeyPrefix,
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		rec := &dotpath.TourRecord{}
		err := it.Item().Value(func(val []byte) error {
			return decodeRecord(rec, val)
		})
		if err != nil {
			return err
		}
		onHit <- rec
	}
	return nil
}
