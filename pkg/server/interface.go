/*
Package server implements msgpack IPC for anagram searches.

The server reads msgpack values from stdin and writes one msgpack response per
request to stdout. Each message carries an ID that is echoed back, so a client
may pipeline requests.

# IPC

Anagram requests are the default action:

	{"id": "req_001", "q": "dirty room", "l": 20}

The server responds with the phrases found, their count and the search time in microseconds:

	{"id": "req_001", "p": ["dirty room", "dormitory", ...], "c": 20, "t": 145, "trunc": true}

"m" bounds the number of non-completing words and switches to the lazy search,
which streams phrases and stops as soon as "l" phrases were found:

	{"id": "req_002", "q": "dirty room", "m": 1, "l": 5}

Other actions:

	{"id": "info_001", "action": "info"}
	{"id": "ping", "action": "health"}

An info request may carry "q"; the response then counts the cached results for
rearrangements of its letters in "variants".

# Sorting and limits

"sort" orders the phrases returned, it never changes which phrases are chosen.
Without "m" the full result is sorted and then cut to "l", so the first "l"
phrases in sorted order come back. With "m" the first "l" phrases in search
order are collected, then sorted; the same request with and without "m" can
therefore return different subsets once the limit truncates.

Errors are reported as {"id": ..., "e": message, "c": code}; the server keeps
reading after a bad request and stops cleanly at EOF.
*/
package server

// Action names accepted in Request.Action
const (
	ActionAnagram = "anagram"
	ActionInfo    = "info"
	ActionHealth  = "health"
)

// Request is any message a client can send. Action defaults to anagram.
type Request struct {
	ID       string `msgpack:"id"`
	Action   string `msgpack:"action,omitempty"`
	Input    string `msgpack:"q,omitempty"`
	MaxWords *int   `msgpack:"m,omitempty"`
	Limit    int    `msgpack:"l,omitempty"`
	Lazy     bool   `msgpack:"lazy,omitempty"`
	Sort     bool   `msgpack:"sort,omitempty"`
}

// AnagramResponse carries the phrases found for one request
type AnagramResponse struct {
	ID        string   `msgpack:"id"`
	Phrases   []string `msgpack:"p"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
	Truncated bool     `msgpack:"trunc,omitempty"`
}

// InfoResponse describes the loaded dictionary and engine
type InfoResponse struct {
	ID       string         `msgpack:"id"`
	Status   string         `msgpack:"status"`
	Words    int            `msgpack:"words"`
	Stats    map[string]int `msgpack:"stats,omitempty"`
	Variants int            `msgpack:"variants,omitempty"`
}

// StatusResponse answers health checks
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
