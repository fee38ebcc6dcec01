// Package main provides the bridgesim CLI for constrained deal
// simulation against a double-dummy solver.
package main

func main() {
	Execute()
}
