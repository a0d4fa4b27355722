package impl

import (
	"database/sql"
	"errors"
	"strconv"

	"codeberg.org/gruf/go-mutexes"
	"github.com/rs/zerolog/log"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/db"
)

type dbImpl struct {
	Config config.Configuration
	db     *sql.DB
	DMP    *diffmatchpatch.DiffMatchPatch
	// locks serializes writes to the responses of one entry.
	locks *mutexes.MutexMap
}

func New(config config.Configuration, d *sql.DB) db.DB {
	locks := mutexes.MutexMap{}
	return &dbImpl{
		Config: config,
		db:     d,
		DMP:    diffmatchpatch.New(),
		locks:  &locks,
	}
}

// HandleError takes a database error and returns a higher level error that hides the implementation details
// and can be more easily handled by the calling functions without doing type assertions, checking error codes and
// comparing to sentinel errors.
func (d *dbImpl) HandleError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return db.ErrNotFound
	case errors.Is(err, db.ErrNotFound), errors.Is(err, db.ErrConflict), errors.Is(err, db.ErrInternal):
		return err
	case isConstraint(err):
		return db.ErrConflict
	default:
		log.Error().Err(err).Msg("database error")
		return err
	}
}

func (d *dbImpl) WithTx(f func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return d.HandleError(err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		} else if err != nil {
			_ = tx.Rollback()
			err = d.HandleError(err)
		} else {
			err = d.HandleError(tx.Commit())
		}
	}()

	err = f(tx)
	return
}

// lockEntry takes the response write lock of an entry.
func (d *dbImpl) lockEntry(entryID int64) func() {
	return d.locks.Lock(strconv.FormatInt(entryID, 10))
}

// mustAffect returns db.ErrNotFound when a statement changed no rows.
func mustAffect(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
