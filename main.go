package main

import "github.com/hostelhub/server/cmd"

func main() {
	cmd.Execute()
}
