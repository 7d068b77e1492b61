package main

import (
	"github.com/soc-toolbox/esmbridge/cmd"
)

func main() {
	cmd.Execute()
}
