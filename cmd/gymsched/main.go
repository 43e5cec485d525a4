package main

import "github.com/example/gymsched/cmd"

func main() {
	cmd.Execute()
}
