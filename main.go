package main

import "github.com/naka-gawa/org-commits/cmd"

func main() {
	cmd.Execute()
}
