package main

import "github.com/UnknownOlympus/shiftbook/internal/cli"

// main is the entry point of the application.
func main() {
	cli.Execute()
}
