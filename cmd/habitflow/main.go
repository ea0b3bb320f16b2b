package main

import "habitflow/cmd/habitflow/root"

func main() {
	root.Execute()
}
