// Command arenactl inspects size-class profiles and replays or benchmarks
// allocation workloads against the arena allocator.
package main

func main() {
	execute()
}
