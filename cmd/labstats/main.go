package main

import "github.com/emiliopalmerini/labstats/internal/cli"

func main() {
	cli.Execute()
}
