package main

import "aiopsmon/internal/cmd"

func main() {
	cmd.Execute()
}
