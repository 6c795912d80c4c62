package relay

import (
	"net/http"

	"github.com/calehh/funddao/action"
	"github.com/calehh/funddao/gov"
	"github.com/gin-gonic/gin"
)

// HeightFunc reports the current governance height; the server derives
// it from genesis time and the block interval.
type HeightFunc func() uint64

type Service struct {
	engine     *gin.Engine
	gov        *gov.Engine
	store      *Store
	heightFn   HeightFunc
	listenAddr string
}

func NewService(listenAddr string, g *gov.Engine, store *Store, heightFn HeightFunc) *Service {
	r := gin.Default()
	s := &Service{
		engine:     r,
		gov:        g,
		store:      store,
		heightFn:   heightFn,
		listenAddr: listenAddr,
	}
	s.engine.POST("/submitAction", s.handleSubmitAction)
	s.engine.POST("/getProposals", s.handleGetProposals)
	s.engine.POST("/getVotes", s.handleGetVotes)
	s.engine.POST("/getMembers", s.handleGetMembers)
	s.engine.POST("/getTreasury", s.handleGetTreasury)
	s.engine.POST("/getAccount", s.handleGetAccount)
	s.engine.POST("/getStatus", s.handleGetStatus)
	s.engine.POST("/registerListener", s.handleRegisterListener)
	s.engine.POST("/removeListener", s.handleRemoveListener)
	return s
}

func (s *Service) Start() {
	s.engine.Run(s.listenAddr)
}

// engine preconditions come back to the caller as 400s; anything else
// is a server fault.
func clientFault(err error) bool {
	switch err {
	case gov.ErrUnauthorized, gov.ErrNotAMember, gov.ErrProposalNotFound,
		gov.ErrAlreadyVoted, gov.ErrVotingEnded, gov.ErrVotingNotEnded,
		gov.ErrProposalNotPassed, gov.ErrAlreadyExecuted, gov.ErrAlreadyCancelled,
		gov.ErrInsufficientFunds, gov.ErrInvalidAmount, gov.ErrMemberExists,
		action.ErrInvalidAction, action.ErrUnsupportedActionType,
		action.ErrUnsupportedVersion, action.ErrSigInvalid, action.ErrNonceInvalid:
		return true
	}
	return false
}

func (s *Service) fail(c *gin.Context, err error) {
	if clientFault(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type SubmitActionResponse struct {
	Height uint64 `json:"height"`
}

func (s *Service) handleSubmitAction(c *gin.Context) {
	dat, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	act, err := action.UnmarshalAction(dat)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	height := s.heightFn()
	if err := s.gov.SubmitAction(act, height); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SubmitActionResponse{Height: height})
}

type GetProposalsReq struct {
	ProposalId      uint64 `json:"proposalId"`
	ProposerAddress string `json:"proposer"`
	Page            int    `json:"page"`
	PageSize        int    `json:"pageSize"`
}

type ProposalInfo struct {
	Proposal Proposal `json:"proposal"`
	Status   string   `json:"status"`
	VoteCnt  uint64   `json:"voteCnt"`
}

type GetProposalResponse struct {
	Proposals []ProposalInfo `json:"proposals"`
	Total     uint64         `json:"total"`
}

func (s *Service) handleGetProposals(c *gin.Context) {
	var response GetProposalResponse
	response.Proposals = make([]ProposalInfo, 0)
	var err error
	var requestData GetProposalsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if requestData.ProposalId != 0 {
		info, err := s.getProposalInfoById(requestData.ProposalId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Proposals = append(response.Proposals, info)
		response.Total = 1
		c.JSON(http.StatusOK, response)
		return
	}

	proposals := make([]Proposal, 0)
	total := uint64(0)
	if requestData.ProposerAddress != "" {
		proposals, total, err = s.store.getProposalsByProposer(requestData.ProposerAddress, requestData.Page, requestData.PageSize)
	} else {
		proposals, total, err = s.store.getProposals(requestData.Page, requestData.PageSize)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Total = total
	for _, p := range proposals {
		info, err := s.getProposalInfoById(p.Id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Proposals = append(response.Proposals, info)
	}
	c.JSON(http.StatusOK, response)
}

func (s *Service) getProposalInfoById(id uint64) (ProposalInfo, error) {
	proposal, err := s.store.getProposalById(id)
	if err != nil {
		return ProposalInfo{}, err
	}
	_, voteCnt, err := s.store.getVotesByProposal(id, 0, 1)
	if err != nil {
		return ProposalInfo{}, err
	}
	status, err := s.gov.ProposalStatus(id, s.heightFn())
	if err != nil {
		return ProposalInfo{}, err
	}
	return ProposalInfo{
		Proposal: proposal,
		Status:   status.String(),
		VoteCnt:  voteCnt,
	}, nil
}

type GetVotesReq struct {
	ProposalId uint64 `json:"proposalId"`
	Voter      string `json:"voter"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

type GetVotesResponse struct {
	Votes []ProposalVote `json:"votes"`
	Total uint64         `json:"total"`
}

func (s *Service) handleGetVotes(c *gin.Context) {
	var response GetVotesResponse
	response.Votes = make([]ProposalVote, 0)
	var requestData GetVotesReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var votes []ProposalVote
	var total uint64
	var err error
	switch {
	case requestData.ProposalId != 0:
		votes, total, err = s.store.getVotesByProposal(requestData.ProposalId, requestData.Page, requestData.PageSize)
	case requestData.Voter != "":
		votes, total, err = s.store.getVotesByVoter(requestData.Voter, requestData.Page, requestData.PageSize)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "proposalId or voter is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Votes = votes
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetMembersReq struct {
	ActiveOnly bool `json:"activeOnly"`
}

type GetMembersResponse struct {
	Members []Member `json:"members"`
	Total   uint64   `json:"total"`
}

func (s *Service) handleGetMembers(c *gin.Context) {
	var requestData GetMembersReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	members, err := s.store.getMembers(requestData.ActiveOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetMembersResponse{
		Members: members,
		Total:   uint64(len(members)),
	})
}

type GetTreasuryReq struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type GetTreasuryResponse struct {
	Balance uint64         `json:"balance"`
	Flows   []TreasuryFlow `json:"flows"`
	Total   uint64         `json:"total"`
}

func (s *Service) handleGetTreasury(c *gin.Context) {
	var requestData GetTreasuryReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.PageSize == 0 {
		requestData.PageSize = 20
	}
	flows, total, err := s.store.getTreasuryFlows(requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, GetTreasuryResponse{
		Balance: s.gov.Treasury(),
		Flows:   flows,
		Total:   total,
	})
}

type GetAccountReq struct {
	Address string `json:"address"`
}

type GetAccountResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Nonce   uint64 `json:"nonce"`
	Member  bool   `json:"member"`
	Power   uint64 `json:"power"`
}

func (s *Service) handleGetAccount(c *gin.Context) {
	var requestData GetAccountReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	balance, err := s.gov.AccountBalance(requestData.Address)
	if err != nil {
		s.fail(c, err)
		return
	}
	nonce, err := s.gov.AccountNonce(requestData.Address)
	if err != nil {
		s.fail(c, err)
		return
	}
	member, err := s.gov.IsMember(requestData.Address)
	if err != nil {
		s.fail(c, err)
		return
	}
	power, err := s.gov.VotingPowerOf(requestData.Address)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GetAccountResponse{
		Address: requestData.Address,
		Balance: balance,
		Nonce:   nonce,
		Member:  member,
		Power:   power,
	})
}

type GetStatusResponse struct {
	ChainId      string `json:"chainId"`
	Admin        string `json:"admin"`
	Height       uint64 `json:"height"`
	Members      uint64 `json:"members"`
	Proposals    uint64 `json:"proposals"`
	Treasury     uint64 `json:"treasury"`
	VotingPeriod uint64 `json:"votingPeriod"`
	StateHash    []byte `json:"stateHash"`
}

func (s *Service) handleGetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, GetStatusResponse{
		ChainId:      s.gov.ChainID(),
		Admin:        s.gov.Admin(),
		Height:       s.heightFn(),
		Members:      s.gov.MemberCount(),
		Proposals:    s.gov.ProposalCount(),
		Treasury:     s.gov.Treasury(),
		VotingPeriod: s.gov.VotingPeriod(),
		StateHash:    s.gov.StateHash(),
	})
}

type RegisterListenerReq struct {
	Url string `json:"url"`
}

type RegisterListenerResponse struct {
	Id uint64 `json:"id"`
}

func (s *Service) handleRegisterListener(c *gin.Context) {
	var requestData RegisterListenerReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.Url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	l, err := s.store.addListener(requestData.Url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, RegisterListenerResponse{Id: l.Id})
}

type RemoveListenerReq struct {
	Id uint64 `json:"id"`
}

func (s *Service) handleRemoveListener(c *gin.Context) {
	var requestData RemoveListenerReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requestData.Id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	if err := s.store.removeListener(requestData.Id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
