package main

import "github.com/strrl/fakeprofile/internal/cmd"

func main() {
	cmd.Execute()
}
