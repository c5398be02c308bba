package main

import (
	"github.com/uvolink/uvolink/cmd"
)

func main() {
	cmd.Execute()
}
