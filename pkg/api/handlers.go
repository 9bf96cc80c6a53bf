package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cagmock/cagmock/pkg/dataset"
	"github.com/cagmock/cagmock/pkg/httputil"
)

// MsgInvalidRequestBody is the error text of every rejected mutation body.
const MsgInvalidRequestBody = "Invalid request body"

// Success messages of the mutation endpoints.
const (
	MsgStatusUpdated = "Status updated successfully"
	MsgCAGsAssigned  = "CAGs assigned successfully"
)

// ClientListResponse is returned by GET /api/clients/activeClientList.
type ClientListResponse struct {
	ClientList []dataset.Client `json:"clientList"`
}

// ContractListResponse is returned by GET /api/clients/contractList.
type ContractListResponse struct {
	ContractList []dataset.ContractSummary `json:"contractList"`
}

// OperationUnitListResponse is returned by GET /api/clients/activeOperationUnitList.
type OperationUnitListResponse struct {
	OperationUnitList []dataset.OperationUnitSummary `json:"operationUnitList"`
}

// AssignedCAGListResponse is returned by GET /api/cag/assignedCAGList.
type AssignedCAGListResponse struct {
	OuCagList []dataset.AssignedCAG `json:"ouCagList"`
	Count     int                   `json:"count"`
}

// CAGMappingListResponse is returned by GET /api/cag/allListByConditions.
type CAGMappingListResponse struct {
	Entities []dataset.CAGMapping `json:"entities"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Uptime    int64     `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// ResetResponse is returned by POST /__admin/reset.
type ResetResponse struct {
	Message string        `json:"message"`
	Stats   dataset.Stats `json:"stats"`
}

func (s *Server) handleActiveClientList(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, ClientListResponse{ClientList: s.store.ActiveClients()})
}

func (s *Server) handleContractList(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	httputil.WriteOK(w, ContractListResponse{ContractList: s.store.ContractsByClient(clientID)})
}

func (s *Server) handleOperationUnitList(w http.ResponseWriter, r *http.Request) {
	contractID := r.URL.Query().Get("contractInternalId")
	httputil.WriteOK(w, OperationUnitListResponse{OperationUnitList: s.store.OperationUnitsByContract(contractID)})
}

func (s *Server) handleAssignedCAGList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := dataset.ParsePage(q.Get("page"), q.Get("size"), s.cfg.Pagination.DefaultSize)
	list, count := s.store.AssignedCAGs(q.Get("operationUnitInternalId"), page)
	httputil.WriteOK(w, AssignedCAGListResponse{OuCagList: list, Count: count})
}

func (s *Server) handleListByConditions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	conds := dataset.MappingConditions{
		CarrierID:       q.Get("carrierId"),
		CarrierName:     q.Get("carrierName"),
		AccountID:       q.Get("accountId"),
		AccountName:     q.Get("accountName"),
		GroupID:         q.Get("groupId"),
		GroupName:       q.Get("groupName"),
		AssignmentLevel: q.Get("assignmentLevel"),
		StartDate:       q.Get("startDate"),
		EndDate:         q.Get("endDate"),
	}
	httputil.WriteOK(w, CAGMappingListResponse{Entities: s.store.SearchMappings(conds)})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dataset.UpdateStatusRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	updated, err := s.store.UpdateStatus(req)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.metrics.StatusUpdated(updated)
	httputil.WriteMessage(w, MsgStatusUpdated)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req dataset.AssignRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	created, err := s.store.Assign(req)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.metrics.AssignmentsCreated(len(created))
	if len(created) > 0 {
		s.log.Debug("assignment ids issued",
			"first", created[0].OuCagID,
			"last", created[len(created)-1].OuCagID,
			"requestId", RequestIDFromContext(r.Context()),
		)
	}
	httputil.WriteMessage(w, MsgCAGsAssigned)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, s.store.Snapshot())
}

func (s *Server) handleResetState(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Reset()
	httputil.WriteOK(w, ResetResponse{Message: "dataset reset to seed", Stats: stats})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	httputil.WriteOK(w, HealthResponse{
		Status:    "healthy",
		Uptime:    int64(now.Sub(s.startedAt).Seconds()),
		Timestamp: now,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.Handler().ServeHTTP(w, r)
}

// decodeBody decodes a JSON body into v and writes the error response on
// failure. It reports whether the handler should continue.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := httputil.DecodeJSON(w, r, v, s.cfg.Server.MaxBodyBytes)
	if err == nil {
		return true
	}

	s.log.Debug("rejected request body",
		"path", r.URL.Path,
		"error", err,
		"requestId", RequestIDFromContext(r.Context()),
	)
	if errors.Is(err, httputil.ErrBodyTooLarge) {
		httputil.WriteDecodeError(w, err, MsgInvalidRequestBody)
		return false
	}

	body := httputil.ErrorBody{Error: MsgInvalidRequestBody}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		body.Field = typeErr.Field
		body.Hint = "expected " + typeErr.Type.String() + ", got " + typeErr.Value
	}
	httputil.WriteError(w, http.StatusBadRequest, body)
	return false
}

// writeStoreError maps a store error onto a response. Validation failures
// are 400s; anything else is a 500.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *dataset.ValidationError
	if errors.As(err, &ve) {
		httputil.WriteError(w, ve.StatusCode(), httputil.ErrorBody{
			Error: MsgInvalidRequestBody,
			Field: ve.Field,
			Hint:  ve.Hint(),
		})
		return
	}

	s.log.Error("request failed", "path", r.URL.Path, "error", err)
	httputil.WriteInternalError(w, "internal server error")
}
