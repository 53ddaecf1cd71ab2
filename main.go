package main

import "github.com/toddkasper/outage-query/cmd"

func main() {
	cmd.Execute()
}
