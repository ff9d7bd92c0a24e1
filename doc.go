// Package swifttoo is a client for the Swift mission's Target of Opportunity
// (TOO) API. It submits and manages TOO observation requests, queries the
// pre-planned science timeline and as-flown observation history, computes
// target visibility and South Atlantic Anomaly passages, resolves source names
// to coordinates, converts Swift mission time, and downloads mission data
// products from the HEASARC archive and its mirrors.
//
// All API calls are signed with an HS256 JWT derived from the configured
// username and shared secret; the anonymous identity works for read-only
// queries. Submissions are asynchronous: the API returns a job number whose
// status moves through Queued, Processing and finally Accepted or Rejected.
package swifttoo
