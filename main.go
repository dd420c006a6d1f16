package main

import "github.com/ValentinKolb/cbench/cmd"

func main() {
	cmd.Execute()
}
