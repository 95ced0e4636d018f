package main

import "github.com/voxtraditionis/vox/cmd"

func main() {
	cmd.Execute()
}
