package main

import "github.com/inovacc/grabr/cmd"

func main() {
	cmd.Execute()
}
