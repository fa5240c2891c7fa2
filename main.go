package main

import "github.com/maxdcmn/gpuhud/cmd"

func main() {
	cmd.Execute()
}
