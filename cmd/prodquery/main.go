package main

import "github.com/kbukum/prodquery/internal/cli"

func main() {
	cli.Execute()
}
