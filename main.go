package main

import "github.com/gaurav-prasanna/sheetpress/cmd"

func main() {
	cmd.Execute()
}
