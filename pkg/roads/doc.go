// Package roads is the external collaborator boundary for the Google Roads
// Management route selection API.
//
// The pipeline depends only on the Creator capability (create one route,
// return its identifier or a classified error), so runs are testable with a
// deterministic fake and the HTTP binding stays in one place.
//
// The HTTP client posts one route per call:
//
//	POST {base}/projects/{project}/selectedRoutes?selectedRouteId={name}
//	{"dynamic_route": {"origin": {...}, "destination": {...}}}
//
// authenticated with a bearer token from an oauth2.TokenSource. By default
// Application Default Credentials are used, the Go-native equivalent of
// `gcloud auth application-default print-access-token`.
//
// API failures are surfaced as *roads.APIError and classified by Classify
// into the submission failure taxonomy (rate_limited, invalid_request,
// auth_failure, timeout, unknown).
package roads
