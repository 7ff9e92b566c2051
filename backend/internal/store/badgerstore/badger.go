// Package badgerstore is the embedded BadgerDB storage backend.
//
// Key layout (ids zero padded to 20 digits so prefix scans come back in id
// order for any non-negative int):
//
//	company/<cid>          → Company JSON
//	person/<pid>           → personDoc JSON (person + food ids + friend ids)
//	food/<fid>             → Food JSON
//	employee/<cid>/<pid>   → empty, one per employment
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"hivery/backend/internal/model"
	"hivery/backend/internal/store"
	apperrors "hivery/backend/pkg/errors"
	"hivery/backend/pkg/logger"
)

// Config holds configuration for a BadgerDB instance.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string
	// InMemory enables in-memory mode (no disk persistence). Useful for testing.
	InMemory bool
	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool
	// Logger receives BadgerDB's internal logging. Nil disables it.
	Logger *zap.Logger
}

// InMemoryConfig returns configuration for tests
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Store implements store.Store on BadgerDB
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

var _ store.Store = (*Store)(nil)

// badgerLogger adapts zap to BadgerDB's Logger interface.
type badgerLogger struct {
	sugar *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.sugar.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.sugar.Infof(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.sugar.Debugf(format, args...) }

// Open opens a BadgerDB database at the configured path, or in memory
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, apperrors.NewConfigMissingRequired("BADGER_PATH")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{sugar: cfg.Logger.Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.NewStoreFailed("open badger database", err)
	}

	return &Store{db: db, logger: logger.OrNop(cfg.Logger)}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

type personDoc struct {
	Person  model.Person `json:"person"`
	Foods   []string     `json:"foods"`
	Friends []int        `json:"friends"`
}

func companyKey(id int) []byte { return []byte(fmt.Sprintf("company/%020d", id)) }
func personKey(id int) []byte  { return []byte(fmt.Sprintf("person/%020d", id)) }
func foodKey(id string) []byte { return []byte("food/" + id) }
func employeePrefix(cid int) []byte {
	return []byte(fmt.Sprintf("employee/%020d/", cid))
}
func employeeKey(cid, pid int) []byte {
	return append(employeePrefix(cid), []byte(fmt.Sprintf("%020d", pid))...)
}

// Reset removes all keys
func (s *Store) Reset(ctx context.Context) error {
	if err := s.db.DropAll(); err != nil {
		return apperrors.NewStoreFailed("reset", err)
	}
	s.logger.Info("Store reset")
	return nil
}

// SaveAll writes the whole dataset in a single transaction
func (s *Store) SaveAll(ctx context.Context, ds *model.Dataset) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, id := range ds.CompanyIDs() {
			if err := setJSON(txn, companyKey(id), ds.Companies[id]); err != nil {
				return err
			}
		}
		for _, id := range ds.FoodIDs() {
			if err := setJSON(txn, foodKey(id), ds.Foods[id]); err != nil {
				return err
			}
		}
		for _, id := range ds.PersonIDs() {
			p := ds.People[id]
			doc := personDoc{
				Person:  *p,
				Foods:   ds.FavouriteFoods[id],
				Friends: ds.Friends.Friends(id),
			}
			if err := setJSON(txn, personKey(id), doc); err != nil {
				return err
			}
			if err := txn.Set(employeeKey(p.CompanyID, id), []byte{}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewStoreFailed("save all", err)
	}

	s.logger.Info("Dataset saved",
		zap.Int("companies", len(ds.Companies)),
		zap.Int("people", len(ds.People)),
		zap.Int("foods", len(ds.Foods)),
	)
	return nil
}

// CompanyByID returns the company or nil
func (s *Store) CompanyByID(ctx context.Context, id int) (*model.Company, error) {
	var company *model.Company
	err := s.db.View(func(txn *badger.Txn) error {
		var c model.Company
		found, err := getJSON(txn, companyKey(id), &c)
		if found {
			company = &c
		}
		return err
	})
	if err != nil {
		return nil, apperrors.NewStoreFailed("company by id", err)
	}
	return company, nil
}

// PersonByID returns the person with foods and friends resolved, or nil
func (s *Store) PersonByID(ctx context.Context, id int) (*store.PersonDetail, error) {
	var detail *store.PersonDetail
	err := s.db.View(func(txn *badger.Txn) error {
		var doc personDoc
		found, err := getJSON(txn, personKey(id), &doc)
		if err != nil || !found {
			return err
		}

		d := &store.PersonDetail{
			Person:  doc.Person,
			Foods:   make([]model.Food, 0, len(doc.Foods)),
			Friends: make([]model.Person, 0, len(doc.Friends)),
		}
		for _, fid := range doc.Foods {
			var food model.Food
			if found, err := getJSON(txn, foodKey(fid), &food); err != nil {
				return err
			} else if !found {
				return fmt.Errorf("person %d references missing food %q", id, fid)
			}
			d.Foods = append(d.Foods, food)
		}
		for _, pid := range doc.Friends {
			var friend personDoc
			if found, err := getJSON(txn, personKey(pid), &friend); err != nil {
				return err
			} else if !found {
				return fmt.Errorf("person %d references missing friend %d", id, pid)
			}
			d.Friends = append(d.Friends, friend.Person)
		}
		sortFoods(d.Foods)
		detail = d
		return nil
	})
	if err != nil {
		return nil, apperrors.NewStoreFailed("person by id", err)
	}
	return detail, nil
}

// PersonsByCompanyID returns the employees of a company ordered by id
func (s *Store) PersonsByCompanyID(ctx context.Context, companyID int) ([]model.Person, error) {
	people := []model.Person{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := employeePrefix(companyID)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			pid, err := strconv.Atoi(string(key[len(prefix):]))
			if err != nil {
				return fmt.Errorf("parse employee key %q: %w", key, err)
			}
			var doc personDoc
			if found, err := getJSON(txn, personKey(pid), &doc); err != nil {
				return err
			} else if found {
				people = append(people, doc.Person)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewStoreFailed("persons by company id", err)
	}
	return people, nil
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set(key, b)
}

func getJSON(txn *badger.Txn, key []byte, v any) (bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func sortFoods(foods []model.Food) {
	sort.Slice(foods, func(i, j int) bool { return foods[i].ID < foods[j].ID })
}
