package main

import "github.com/alexiusacademia/gopond/cmd"

func main() {
	cmd.Execute()
}
