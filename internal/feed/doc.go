// Package feed is the HTTP side of glance: one GET per poll with a fixed
// timeout, followed by a JSON decode.
//
// Failures are reported as *Error with one of two kinds. KindTransport
// means the round trip did not complete (network error, timeout, or a
// non-2xx status). KindDecode means the body arrived but did not have the
// expected shape. Callers branch on the kind with errors.Is against
// ErrTransport and ErrDecode; both end up as the same placeholder segment
// in the bar.
package feed
