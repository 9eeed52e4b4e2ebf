// Package benchmark compares the cost of gatelog's level and tag gates with
// the level checks of other logging libraries, all writing JSON to
// io.Discard. It has no exported API; run it with
//
//	go test -bench=. -benchmem ./benchmark
package benchmark
