// Command funland is a playful chat page for kids, backed by a small HTTP
// service that forwards questions to an AI model.
package main

import "github.com/funland/funland/internal/commands"

func main() {
	commands.Execute()
}
