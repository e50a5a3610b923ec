// Command llmchat is a terminal chat UI with simulated assistant replies.
package main

import "github.com/diogo/llmchat/internal/commands"

func main() {
	commands.Execute()
}
