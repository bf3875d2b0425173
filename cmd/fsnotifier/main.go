package main

import "github.com/black-desk/fsnotifier/cmd/fsnotifier/cmd"

func main() {
	cmd.Execute()
}
