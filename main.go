package main

import "grambazaar/cmd"

func main() {
	cmd.Execute()
}
