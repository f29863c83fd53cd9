package main

import "github.com/ranga291257/astra/cmd/astraaudit"

func main() { astraaudit.Execute() }
