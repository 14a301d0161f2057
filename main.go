package main

import "brio/cmd"

func main() {
	cmd.Execute()
}
