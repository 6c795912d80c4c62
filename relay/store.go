package relay

import (
	"encoding/json"
	"time"

	"github.com/calehh/funddao/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/pkg/errors"
)

// Store persists the event log, listener registry and the query
// projections in sqlite.
type Store struct {
	logger cmtlog.Logger
	db     *gorm.DB
}

func NewStore(logger cmtlog.Logger, dbPath string) (*Store, error) {
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open relay db")
	}
	if err := db.AutoMigrate(&Cursor{}, &Listener{}, &EventRecord{}, &Delivery{},
		&Proposal{}, &Member{}, &ProposalVote{}, &TreasuryFlow{}).Error; err != nil {
		return nil, errors.Wrap(err, "migrate relay db")
	}
	return &Store{
		logger: logger.With("module", "relay"),
		db:     db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// saveEvent appends to the event log and returns the record id deliveries
// reference.
func (s *Store) saveEvent(ev types.Event, height uint64) (uint64, error) {
	payload, err := json.Marshal(ev.Attributes)
	if err != nil {
		return 0, err
	}
	rec := EventRecord{
		Type:      ev.Type,
		Payload:   string(payload),
		Height:    height,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return 0, err
	}
	return rec.Id, nil
}

func (s *Store) eventById(id uint64) (EventRecord, error) {
	var rec EventRecord
	err := s.db.First(&rec, id).Error
	return rec, err
}

func (s *Store) addListener(url string) (Listener, error) {
	var l Listener
	err := s.db.Where("url = ?", url).First(&l).Error
	if err == nil {
		return l, nil
	}
	if err != gorm.ErrRecordNotFound {
		return Listener{}, err
	}
	l = Listener{Url: url, CreatedAt: time.Now().Unix()}
	if err := s.db.Create(&l).Error; err != nil {
		return Listener{}, err
	}
	return l, nil
}

func (s *Store) removeListener(id uint64) error {
	return s.db.Delete(&Listener{}, "id = ?", id).Error
}

func (s *Store) listeners() ([]Listener, error) {
	var ls []Listener
	err := s.db.Find(&ls).Error
	return ls, err
}

func (s *Store) createDelivery(event, listener uint64) (Delivery, error) {
	d := Delivery{
		Event:     event,
		Listener:  listener,
		UpdatedAt: time.Now().Unix(),
	}
	err := s.db.Create(&d).Error
	return d, err
}

func (s *Store) saveDelivery(d *Delivery) error {
	d.UpdatedAt = time.Now().Unix()
	return s.db.Save(d).Error
}

func (s *Store) pendingDeliveries(limit int) ([]Delivery, error) {
	var ds []Delivery
	err := s.db.Where("done = ?", false).Order("id asc").Limit(limit).Find(&ds).Error
	return ds, err
}

func (s *Store) getProposals(page int, pageSize int) ([]Proposal, uint64, error) {
	var proposals []Proposal
	err := s.db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = s.db.Model(&Proposal{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (s *Store) getProposalById(id uint64) (Proposal, error) {
	var proposal Proposal
	err := s.db.Where("id = ?", id).First(&proposal).Error
	if err != nil {
		return Proposal{}, err
	}
	return proposal, nil
}

func (s *Store) getProposalsByProposer(proposer string, page int, pageSize int) ([]Proposal, uint64, error) {
	var proposals []Proposal
	err := s.db.Where("proposer = ?", proposer).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = s.db.Model(&Proposal{}).Where("proposer = ?", proposer).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (s *Store) getVotesByProposal(proposal uint64, page int, pageSize int) ([]ProposalVote, uint64, error) {
	var votes []ProposalVote
	err := s.db.Where("proposal = ?", proposal).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&votes).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = s.db.Model(&ProposalVote{}).Where("proposal = ?", proposal).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return votes, total, nil
}

func (s *Store) getVotesByVoter(voter string, page int, pageSize int) ([]ProposalVote, uint64, error) {
	var votes []ProposalVote
	err := s.db.Where("voter = ?", voter).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&votes).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = s.db.Model(&ProposalVote{}).Where("voter = ?", voter).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return votes, total, nil
}

func (s *Store) getMembers(activeOnly bool) ([]Member, error) {
	var members []Member
	q := s.db.Order("id asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&members).Error
	return members, err
}

func (s *Store) getMemberByAddress(address string) (*Member, error) {
	var m Member
	err := s.db.Where("address = ?", address).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) getTreasuryFlows(page int, pageSize int) ([]TreasuryFlow, uint64, error) {
	var flows []TreasuryFlow
	err := s.db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&flows).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = s.db.Model(&TreasuryFlow{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return flows, total, nil
}
