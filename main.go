package main

import "github.com/ezvezdov/musiclib/cmd"

func main() {
	cmd.Execute()
}
