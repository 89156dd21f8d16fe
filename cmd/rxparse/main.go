package main

import (
	"github.com/netxfw/rxparse/cmd/rxparse/commands"
)

func main() {
	commands.Execute()
}
