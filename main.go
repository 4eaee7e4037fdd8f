package main

import (
	"os"

	"github.com/llehouerou/spread/internal/app"
)

func main() {
	os.Exit(app.Execute())
}
