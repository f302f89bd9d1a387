package main

import "titlehub/cmd/cli/command"

func main() {
	command.Execute()
}
