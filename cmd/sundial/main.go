package main

import "sundial/internal/cli"

func main() {
	cli.Execute()
}
