package api

import (
	"net/http"
	"slices"

	"github.com/cagmock/cagmock/pkg/httputil"
)

// Tags group operations in the OpenAPI document.
const (
	TagClient = "Client"
	TagCAG    = "CAG"
	TagAdmin  = "Admin"
)

// Param documents one query parameter.
type Param struct {
	Name        string
	Description string
	Required    bool
	Type        string // "string" or "integer"
	Enum        []string
	Minimum     *float64
}

// Route is one endpoint together with the metadata its OpenAPI operation is
// built from. A Route with Hidden set is served but not documented.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Tag         string
	Params      []Param
	// RequestBody and Response name component schemas from openapi.go.
	RequestBody string
	Response    string
	// Errors lists the non-200 statuses the operation can return.
	Errors []int
	Hidden bool

	handle func(*Server, http.ResponseWriter, *http.Request)
}

// Pattern is the ServeMux pattern of the route.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

var zero = 0.0

var routeTable = []Route{
	{
		Method:      http.MethodGet,
		Path:        "/api/clients/activeClientList",
		OperationID: "getActiveClientList",
		Summary:     "Get all active clients",
		Tag:         TagClient,
		Response:    "ClientListResponse",
		handle:      (*Server).handleActiveClientList,
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/clients/contractList",
		OperationID: "getContractList",
		Summary:     "Get contracts by client",
		Description: "Returns the contracts whose clientId matches exactly. The clientId field is omitted from each result.",
		Tag:         TagClient,
		Params: []Param{
			{Name: "clientId", Description: "Client UUID", Required: true, Type: "string"},
		},
		Response: "ContractListResponse",
		handle:   (*Server).handleContractList,
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/clients/activeOperationUnitList",
		OperationID: "getActiveOperationUnitList",
		Summary:     "Get operation units by contract",
		Description: "Returns the operation units of a contract. The contractInternalId field is omitted from each result.",
		Tag:         TagClient,
		Params: []Param{
			{Name: "contractInternalId", Description: "Contract internal UUID", Required: true, Type: "string"},
		},
		Response: "OperationUnitListResponse",
		handle:   (*Server).handleOperationUnitList,
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/cag/assignedCAGList",
		OperationID: "getAssignedCAGList",
		Summary:     "Get assigned CAGs by operation unit with pagination",
		Description: "Returns one page of the assignments of an operation unit. count is the total before pagination.",
		Tag:         TagCAG,
		Params: []Param{
			{Name: "operationUnitInternalId", Description: "Operation unit internal UUID", Required: true, Type: "string"},
			{Name: "size", Description: "Page size", Type: "integer", Minimum: &zero},
			{Name: "page", Description: "Zero-based page number", Type: "integer", Minimum: &zero},
		},
		Response: "AssignedCAGListResponse",
		handle:   (*Server).handleAssignedCAGList,
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/cag/allListByConditions",
		OperationID: "getCAGListByConditions",
		Summary:     "Search CAG mappings by conditions",
		Description: "All given filters must match exactly. startDate, endDate and assignmentLevel are accepted but not applied.",
		Tag:         TagCAG,
		Params: []Param{
			{Name: "carrierId", Description: "Carrier ID", Type: "string"},
			{Name: "carrierName", Description: "Carrier name", Type: "string"},
			{Name: "accountId", Description: "Account ID", Type: "string"},
			{Name: "accountName", Description: "Account name", Type: "string"},
			{Name: "groupId", Description: "Group ID", Type: "string"},
			{Name: "groupName", Description: "Group name", Type: "string"},
			{Name: "assignmentLevel", Description: "Assignment level (not applied)", Type: "string"},
			{Name: "startDate", Description: "Start date (not applied)", Type: "string"},
			{Name: "endDate", Description: "End date (not applied)", Type: "string"},
		},
		Response: "CAGMappingListResponse",
		handle:   (*Server).handleListByConditions,
	},
	{
		Method:      http.MethodPut,
		Path:        "/api/cag/updateStatus",
		OperationID: "updateCAGStatus",
		Summary:     "Update CAG assignment status",
		Description: "Overwrites the status of every listed assignment. Unknown ids are ignored.",
		Tag:         TagCAG,
		RequestBody: "UpdateStatusRequest",
		Response:    "MessageResponse",
		Errors:      []int{http.StatusBadRequest, http.StatusRequestEntityTooLarge},
		handle:      (*Server).handleUpdateStatus,
	},
	{
		Method:      http.MethodPost,
		Path:        "/api/cag/assign",
		OperationID: "assignCAGs",
		Summary:     "Assign CAGs to an operation unit",
		Description: "Creates one ACTIVE assignment per cagId, enriched from the CAG mapping table.",
		Tag:         TagCAG,
		RequestBody: "AssignRequest",
		Response:    "MessageResponse",
		Errors:      []int{http.StatusBadRequest, http.StatusRequestEntityTooLarge},
		handle:      (*Server).handleAssign,
	},
	{
		Method:      http.MethodGet,
		Path:        "/__admin/state",
		OperationID: "getState",
		Summary:     "Dump the live dataset",
		Tag:         TagAdmin,
		Response:    "Dataset",
		handle:      (*Server).handleGetState,
	},
	{
		Method:      http.MethodPost,
		Path:        "/__admin/reset",
		OperationID: "resetState",
		Summary:     "Restore the seed dataset",
		Tag:         TagAdmin,
		Response:    "ResetResponse",
		handle:      (*Server).handleResetState,
	},
	{Method: http.MethodGet, Path: "/health", Hidden: true, handle: (*Server).handleHealth},
	{Method: http.MethodGet, Path: "/metrics", Hidden: true, handle: (*Server).handleMetrics},
	{Method: http.MethodGet, Path: "/api-docs.json", Hidden: true, handle: (*Server).handleDocsJSON},
	{Method: http.MethodGet, Path: "/api-docs.yaml", Hidden: true, handle: (*Server).handleDocsYAML},
	{Method: http.MethodGet, Path: "/api-docs", Hidden: true, handle: (*Server).handleDocsUI},
}

// Routes returns a copy of the route table.
func Routes() []Route {
	out := make([]Route, len(routeTable))
	copy(out, routeTable)
	return out
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	allowed := make(map[string][]string)
	for _, rt := range routeTable {
		handle := rt.handle
		mux.HandleFunc(rt.Pattern(), func(w http.ResponseWriter, r *http.Request) {
			handle(s, w, r)
		})
		allowed[rt.Path] = append(allowed[rt.Path], rt.Method)
		if rt.Method == http.MethodGet {
			allowed[rt.Path] = append(allowed[rt.Path], http.MethodHead)
		}
	}
	for _, methods := range allowed {
		slices.Sort(methods)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handleFallback(allowed, w, r)
	})
}

// handleFallback answers requests no route matched with a JSON 405 when the
// path exists under another method and a JSON 404 otherwise.
func handleFallback(allowed map[string][]string, w http.ResponseWriter, r *http.Request) {
	// Keep the metrics route label "unmatched" rather than "/".
	r.Pattern = ""
	if methods, ok := allowed[r.URL.Path]; ok {
		httputil.WriteMethodNotAllowed(w, methods)
		return
	}
	httputil.WriteNotFound(w, "no route for "+r.Method+" "+r.URL.Path)
}
