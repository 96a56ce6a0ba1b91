package main

import "github.com/adaudit/adaudit/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
