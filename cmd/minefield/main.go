package main

import "github.com/mcoot/minefield/internal/cli"

func main() {
	cli.Execute()
}
