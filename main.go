package main

import "github.com/ByLCY/labelwrap/cmd"

func main() {
	cmd.Execute()
}
