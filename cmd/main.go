package main

import (
	"sentinelharness/cli"
)

func main() {
	cli.Execute()
}
