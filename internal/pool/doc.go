// Package pool provides a fixed goroutine pool with fork/join execution.
//
// A Pool is created once and reused for every parallel marking call, so a
// sieve run spawns no goroutines of its own. Run forks n tasks and blocks
// until all of them have finished; that join is the only synchronization
// point between the marking workers and the sequential driver.
package pool
