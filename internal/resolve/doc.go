// Package resolve maps request paths onto files in the mock directories.
//
// A request path is split into sanitized segments (see Segments). The last
// segment names the file and the second-to-last segment, when present, names
// the subdirectory:
//
//	GET /api/users/list  ->  <base>/users/list.json
//	GET /health-report   ->  <base>/health-report.json
//	GET /                ->  <base>/index.json
//
// Earlier segments never take part in resolution, so /v1/users/list and
// /v2/users/list share a file. That collision is intentional.
package resolve
