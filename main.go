package main

import "ProcSampler/pkg/commands"

func main() {
	commands.Execute()
}
