// Package api serves the CAG mock REST API over a dataset.Store.
//
// Every endpoint is declared once in the route table (routes.go). The table
// registers the handlers on an http.ServeMux and is also the source of the
// OpenAPI 3 document published at /api-docs.json and /api-docs.yaml, so the
// served contract cannot drift from the implementation.
//
// Client endpoints:
//
//	GET  /api/clients/activeClientList
//	GET  /api/clients/contractList?clientId=
//	GET  /api/clients/activeOperationUnitList?contractInternalId=
//
// CAG endpoints:
//
//	GET  /api/cag/assignedCAGList?operationUnitInternalId=&size=&page=
//	GET  /api/cag/allListByConditions?carrierId=&carrierName=&...
//	PUT  /api/cag/updateStatus
//	POST /api/cag/assign
//
// Operational endpoints: /health, /metrics, /api-docs, GET /__admin/state and
// POST /__admin/reset.
package api
