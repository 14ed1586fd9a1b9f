// Package jobs contains the background tasks of the Atrium API.
//
// TokenSweeper periodically deletes expired refresh tokens and prunes
// revoked ones past their retention window. Jobs expose Start and Stop:
// Start launches the loop in its own goroutine, Stop signals it and waits
// for it to exit. A failed pass is logged and retried on the next tick.
//
//	sweeper := jobs.NewTokenSweeper(tokenService, time.Hour)
//	sweeper.Start()
//	defer sweeper.Stop()
package jobs
