package main

import "github.com/rhaitools/rhaidocs/cmd"

func main() {
	cmd.Execute()
}
