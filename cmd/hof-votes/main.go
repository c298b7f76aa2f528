package main

import "github.com/pfrederiksen/hof-votes/internal/cli"

func main() {
	cli.Execute()
}
