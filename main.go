// Package main is the entry point for the Chatty CLI application.
// It signs users in to the chat service and manages the local session.
package main

import (
	"chatty/cli/cmd"
)

// main is the entry point for the Chatty CLI application.
func main() {
	cmd.Execute()
}
