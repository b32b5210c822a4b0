package main

import "github.com/SvenDH/inkwell/cmd"

func main() {
	cmd.Execute()
}
