package state

import (
	"sync"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/ethereum/go-ethereum/common"
)

type StateDB struct {
	mtx sync.RWMutex

	dir    string
	logger cmtlog.Logger
	db     *iavl.MutableTree

	state *State
}

func NewStateDB(dir string, logger cmtlog.Logger) (db *StateDB, err error) {
	logger = logger.With("module", "daodb")
	ldb, err := dbm.NewDB("funddao", "goleveldb", dir)
	if err != nil {
		return nil, err
	}
	tdb := iavl.NewMutableTree(ldb, 128, true, NewTreeLogger(logger))
	version, err := tdb.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("load db success", "version", version)
	st := newState(tdb, logger)
	err = st.load()
	if err != nil {
		logger.Error("load state fail", "err", err)
		return nil, err
	}
	db = &StateDB{
		dir:    dir,
		logger: logger,
		db:     tdb,
		state:  st,
	}
	return
}

func (db *StateDB) Close() (err error) {
	err = db.db.Close()
	return
}

func (db *StateDB) State() *State {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.state
}

func (db *StateDB) Header() (header Header) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	header = *db.state.Header()
	return
}

func (db *StateDB) Hash() (h common.Hash) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.state.Hash()
}
