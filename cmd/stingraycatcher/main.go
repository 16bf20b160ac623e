// Package main provides the entry point for the StingRayCatcher CLI.
//
// StingRayCatcher analyzes batches of cellular base-station observations and
// flags sites whose identity, signal, or spatial signature matches known
// cell-site simulator behavior.
//
// Usage:
//
//	stingraycatcher scan <observations.csv>
//	stingraycatcher demo
//	stingraycatcher watch --brokers localhost:9092 --topic cells
//
// See --help for all available options.
package main

// main is the entry point for StingRayCatcher.
func main() {
	Execute()
}
