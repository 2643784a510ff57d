// Package hello implements a fixed-size thread pool with graceful shutdown.
//
// The pool spawns its workers up front and hands every submitted job to
// exactly one of them. Closing the pool stops further submissions, lets each
// already-queued job run to completion, and waits for every worker to exit.
package hello
