package main

import (
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/cmd/app"
)

func main() {
	app.Run()
}
