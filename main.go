package main

import "torch-calculator/cmd"

func main() {
	cmd.Execute()
}
