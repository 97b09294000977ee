package main

import "github.com/ZacxDev/folio/cmd"

func main() {
	cmd.Execute()
}
