package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mixtapeorg/libmixtape-go/account"
	"github.com/mixtapeorg/libmixtape-go/registry"
)

// --- request/response shapes ---

type createRecordRequest struct {
	Caller      string `json:"caller"`
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URI         string `json:"uri"`
	PlayPrice   uint64 `json:"play_price"`
}

type createRecordResponse struct {
	RecordID   uint64 `json:"record_id"`
	SubAccount string `json:"sub_account"`
}

type recordResponse struct {
	RecordID    uint64    `json:"record_id"`
	Owner       string    `json:"owner"`
	Creator     string    `json:"creator"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URI         string    `json:"uri"`
	TrackIDs    []string  `json:"track_ids"`
	PlayPrice   uint64    `json:"play_price"`
	PlayCount   uint64    `json:"play_count"`
	CreatedAt   time.Time `json:"created_at"`
	SubAccount  string    `json:"sub_account"`
}

type addTrackRequest struct {
	Caller  string `json:"caller"`
	TrackID string `json:"track_id"`
}

type transferRequest struct {
	Caller   string `json:"caller"`
	NewOwner string `json:"new_owner"`
}

type approveRequest struct {
	Caller   string `json:"caller"`
	Operator string `json:"operator"`
}

type playRequest struct {
	Listener string `json:"listener"`
	Payment  uint64 `json:"payment"`
}

type playResponse struct {
	RecordID    uint64 `json:"record_id"`
	SubAccount  string `json:"sub_account"`
	Payment     uint64 `json:"payment"`
	Fee         uint64 `json:"fee"`
	ArtistShare uint64 `json:"artist_share"`
	PlayCount   uint64 `json:"play_count"`
}

type actorRequest struct {
	Actor string `json:"actor"`
}

type likesResponse struct {
	Count    uint64 `json:"count"`
	HasLiked *bool  `json:"has_liked,omitempty"`
}

type commentRequest struct {
	Actor string `json:"actor"`
	Text  string `json:"text"`
}

type commentResponse struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type balanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type treasuryResponse struct {
	FeeBps      uint16 `json:"fee_bps"`
	Accumulated uint64 `json:"accumulated"`
}

type feeRateRequest struct {
	Caller string `json:"caller"`
	FeeBps uint16 `json:"fee_bps"`
}

type withdrawRequest struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
}

type withdrawResponse struct {
	Amount uint64 `json:"amount"`
}

// --- helpers ---

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func parseAddr(w http.ResponseWriter, s string) (account.Address, bool) {
	addr, err := account.ParseAddress(s)
	if err != nil {
		writeError(w, err)
		return account.ZeroAddress, false
	}
	return addr, true
}

func recordIDVar(w http.ResponseWriter, r *http.Request) (registry.RecordID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid record id %q", raw)})
		return 0, false
	}
	return registry.RecordID(id), true
}

func recordView(rec *registry.Record) recordResponse {
	tracks := rec.TrackIDs
	if tracks == nil {
		tracks = []string{}
	}
	return recordResponse{
		RecordID:    uint64(rec.ID),
		Owner:       rec.Owner.String(),
		Creator:     rec.Creator.String(),
		Title:       rec.Title,
		Description: rec.Description,
		URI:         rec.URI,
		TrackIDs:    tracks,
		PlayPrice:   rec.PlayPrice,
		PlayCount:   rec.PlayCount,
		CreatedAt:   rec.CreatedAt,
		SubAccount:  rec.SubAccount.String(),
	}
}

// --- record handlers ---

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	caller, ok := parseAddr(w, req.Caller)
	if !ok {
		return
	}
	owner, ok := parseAddr(w, req.Owner)
	if !ok {
		return
	}

	id, err := s.core.Registry.CreateRecord(caller, owner, req.Title, req.Description, req.URI, req.PlayPrice)
	if err != nil {
		writeError(w, err)
		return
	}
	sub, err := s.core.Registry.SubAccount(id)
	if err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	writeJSON(w, http.StatusCreated, createRecordResponse{
		RecordID:   uint64(id),
		SubAccount: sub.String(),
	})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records := s.core.Registry.Records()
	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, recordView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordIDVar(w, r)
	if !ok {
		return
	}
	rec, err := s.core.Registry.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordView(rec))
}

func (s *Server) handleAddTrack(w http.ResponseWriter, r *http.Request) {
	id, ok := recordIDVar(w, r)
	if !ok {
		return
	}
	var req addTrackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	caller, ok := parseAddr(w, req.Caller)
	if !ok {
		return
	}
	if err := s.core.Registry.AddTrack(caller, id, req.TrackID); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := recordIDVar(w, r)
	if !ok {
		return
	}
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	caller, ok := parseAddr(w, req.Caller)
	if !ok {
		return
	}
	newOwner, ok := parseAddr(w, req.NewOwner)
	if !ok {
		return
	}
	if err := s.core.Registry.TransferOwnership(caller, id, newOwner); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := recordIDVar(w, r)
	if !ok {
		return
	}
	var req approveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	caller, ok := parseAddr(w, req.Caller)
	if !ok {
		return
	}
	operator, ok := parseAddr(w, req.Operator)
	if !ok {
		return
	}
	if err := s.core.Registry.SetApproved(caller, id, operator); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id, ok := recordIDVar(w, r)
	if !ok {
		return
	}
	var req playRequest
	if !decodeBody(w, r, &req) {
		return
	}
	listener, ok := parseAddr(w, req.Listener)
	if !ok {
		return
	}
	receipt, err := s.core.Play(listener, id, req.Payment)
	if err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	writeJSON(w, http.StatusOK, playResponse{
		RecordID:    uint64(receipt.RecordID),
		SubAccount:  receipt.SubAccount.String(),
		Payment:     receipt.Payment,
		Fee:         receipt.Fee,
		ArtistShare: receipt.ArtistShare,
		PlayCount:   receipt.PlayCount,
	})
}

// --- social handlers ---

func (s *Server) targetVar(w http.ResponseWriter, r *http.Request) (account.Address, bool) {
	return parseAddr(w, mux.Vars(r)["address"])
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	target, ok := s.targetVar(w, r)
	if !ok {
		return
	}
	var req actorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	actor, ok := parseAddr(w, req.Actor)
	if !ok {
		return
	}
	if err := s.core.Social.Like(target, actor); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnlike(w http.ResponseWriter, r *http.Request) {
	target, ok := s.targetVar(w, r)
	if !ok {
		return
	}
	actor, ok := parseAddr(w, mux.Vars(r)["actor"])
	if !ok {
		return
	}
	if err := s.core.Social.Unlike(target, actor); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetLikes(w http.ResponseWriter, r *http.Request) {
	target, ok := s.targetVar(w, r)
	if !ok {
		return
	}
	resp := likesResponse{Count: s.core.Social.LikesCount(target)}
	if raw := r.URL.Query().Get("actor"); raw != "" {
		actor, ok := parseAddr(w, raw)
		if !ok {
			return
		}
		liked := s.core.Social.HasLiked(target, actor)
		resp.HasLiked = &liked
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	target, ok := s.targetVar(w, r)
	if !ok {
		return
	}
	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	actor, ok := parseAddr(w, req.Actor)
	if !ok {
		return
	}
	if err := s.core.Social.AddComment(target, actor, req.Text); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	target, ok := s.targetVar(w, r)
	if !ok {
		return
	}
	comments := s.core.Social.Comments(target)
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentResponse{
			Author:    c.Author.String(),
			Text:      c.Text,
			Timestamp: c.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	addr, ok := s.targetVar(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		Address: addr.String(),
		Balance: s.core.Book.Balance(addr),
	})
}

// --- treasury handlers ---

func (s *Server) handleGetTreasury(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, treasuryResponse{
		FeeBps:      s.core.Treasury.FeeRate(),
		Accumulated: s.core.Treasury.Accumulated(),
	})
}

func (s *Server) handleSetFeeRate(w http.ResponseWriter, r *http.Request) {
	var req feeRateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	caller, ok := parseAddr(w, req.Caller)
	if !ok {
		return
	}
	if err := s.core.Treasury.SetFeeRate(caller, req.FeeBps); err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if !decodeBody(w, r, &req) {
		return
	}
	caller, ok := parseAddr(w, req.Caller)
	if !ok {
		return
	}
	to, ok := parseAddr(w, req.To)
	if !ok {
		return
	}
	amount, err := s.core.Withdraw(caller, to)
	if err != nil {
		writeError(w, err)
		return
	}
	s.persist()
	writeJSON(w, http.StatusOK, withdrawResponse{Amount: amount})
}
