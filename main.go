package main

import "github.com/clubware/club-management/cmd"

func main() {
	cmd.Execute()
}
