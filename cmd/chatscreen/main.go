package main

import "github.com/jorkle/chatscreen/internal/cmd"

func main() {
	cmd.Execute()
}
