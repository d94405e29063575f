package main

import "github.com/OpenPecha/wikisource-automation/cmd"

func main() {
	cmd.Execute()
}
