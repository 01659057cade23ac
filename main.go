package main

import "github.com/twiced-technology-gmbh/gtd/cmd"

func main() {
	cmd.Execute()
}
