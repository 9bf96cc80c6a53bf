// Package metrics exposes Prometheus metrics for the CAG mock server.
//
// Each Metrics value owns its own registry so several servers, or several
// tests, can run in one process without duplicate-registration panics.
//
// Exported series:
//
//	cagmock_http_requests_total{method,route,status}
//	cagmock_http_request_duration_seconds{method,route}
//	cagmock_dataset_records{collection}
//	cagmock_assignments_created_total
//	cagmock_status_updates_total
//
// The route label is the ServeMux pattern that matched, never the raw path,
// so ids in the URL do not explode cardinality.
package metrics
