package main

import (
	"github.com/zackeberger/genomics/cmd"
)

func main() {
	cmd.Execute()
}
