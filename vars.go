package duplexchan

import "expvar"

// Package-wide counters, exported the way bitbucket.org/creachadair/jrpc2's
// server.go registers its expvar.Map in init(): a single process-global
// view across every Channel, independent of the per-Channel metrics.M
// returned by Channel.Metrics.
var (
	channelsActive  = expvar.NewInt("duplexchan.channels_active")
	bytesRead       = expvar.NewInt("duplexchan.bytes_read")
	bytesWritten    = expvar.NewInt("duplexchan.bytes_written")
	packagesParsed  = expvar.NewInt("duplexchan.packages_parsed")
	packagesSent    = expvar.NewInt("duplexchan.packages_sent")
	oversizeErrors  = expvar.NewInt("duplexchan.oversize_errors")
	unhandledErrors = expvar.NewInt("duplexchan.unhandled_errors")
)
