package main

import "github.com/meinhoongagan/portfolio-api/commands"

func main() {
	commands.Execute()
}
