package main

import "github.com/pion/screencapture/cmd/screengrab/commands"

func main() {
	commands.Execute()
}
