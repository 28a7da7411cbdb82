package main

import "zwallpaper/cmd/zwallpaper-cli/cmd"

func main() {
	cmd.Execute()
}
