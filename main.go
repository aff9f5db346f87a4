package main

import "github.com/user/nessusparse/cmd"

func main() {
	cmd.Execute()
}
