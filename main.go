package main

import "go-compose/cmd"

func main() {
	cmd.Execute()
}
