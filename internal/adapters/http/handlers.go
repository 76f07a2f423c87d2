package httpadapter

import (
	"encoding/json"
	"net/http"

	"nonet/internal/analyzer"
	"nonet/internal/domain"
	"nonet/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/count", h.handleCount)
	mux.HandleFunc("/api/analyze", h.handleAnalyze)
}

const (
	defaultMaxCompletions = 10000
	defaultMaxWork        = int64(50_000_000)
	defaultMaxWinningTurn = 9
)

// ---- Validate ----

type validateReq struct {
	Board [9][9]uint8 `json:"board"`
}
type validateResp struct {
	OK        bool               `json:"ok"`
	Conflicts []domain.CellCoord `json:"conflicts,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(validateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), domain.Board{Values: req.Board})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(validateResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Count ----

type countReq struct {
	Board    [9][9]uint8 `json:"board"`
	MaxCount int         `json:"maxCount,omitempty"`
}
type countResp struct {
	Count             int    `json:"count"`
	ReachedCountLimit bool   `json:"reachedCountLimit,omitempty"`
	ReachedWorkLimit  bool   `json:"reachedWorkLimit,omitempty"`
	DurationMs        int64  `json:"durationMs,omitempty"`
	Nodes             int    `json:"nodes,omitempty"`
	Error             string `json:"error,omitempty"`
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req countReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(countResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	maxCount := req.MaxCount
	if maxCount <= 0 {
		maxCount = defaultMaxCompletions
	}
	res, st, err := h.UC.CountSolutions(r.Context(), domain.Board{Values: req.Board}, maxCount, defaultMaxWork)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(countResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(countResp{
		Count:             res.Count,
		ReachedCountLimit: res.ReachedCountLimit,
		ReachedWorkLimit:  res.ReachedWorkLimit,
		DurationMs:        st.Duration.Milliseconds(),
		Nodes:             st.Nodes,
	})
}

// ---- Analyze ----

type analyzeReq struct {
	Board           [9][9]uint8 `json:"board"`
	MaxCompletions  int         `json:"maxCompletions,omitempty"`
	MaxWinningTurns int         `json:"maxWinningTurns,omitempty"`
}
type turnDTO struct {
	HasMove     bool `json:"hasMove"`
	Row         int  `json:"row,omitempty"`
	Col         int  `json:"col,omitempty"`
	Digit       int  `json:"digit,omitempty"`
	ClaimUnique bool `json:"claimUnique,omitempty"`
}
type analyzeResp struct {
	Outcome    string    `json:"outcome,omitempty"`
	Turns      []turnDTO `json:"turns,omitempty"`
	DurationMs int64     `json:"durationMs,omitempty"`
	Nodes      int       `json:"nodes,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(analyzeResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	maxCompletions := req.MaxCompletions
	if maxCompletions <= 0 {
		maxCompletions = defaultMaxCompletions
	}
	maxWinningTurns := req.MaxWinningTurns
	if maxWinningTurns <= 0 {
		maxWinningTurns = defaultMaxWinningTurn
	}
	res, st, err := h.UC.Analyze(r.Context(), domain.Board{Values: req.Board}, maxCompletions, maxWinningTurns, defaultMaxWork)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(analyzeResp{Error: err.Error()})
		return
	}
	resp := analyzeResp{DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes}
	if res.Outcome != nil {
		resp.Outcome = res.Outcome.String()
	}
	resp.Turns = make([]turnDTO, len(res.OptimalTurns))
	for i, t := range res.OptimalTurns {
		resp.Turns[i] = turnFromDomain(t)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func turnFromDomain(t analyzer.Turn) turnDTO {
	c := domain.CellCoordFromPos(t.Move.Pos)
	return turnDTO{
		HasMove:     t.HasMove,
		Row:         c.Row,
		Col:         c.Col,
		Digit:       int(t.Move.Digit),
		ClaimUnique: t.ClaimUnique,
	}
}
