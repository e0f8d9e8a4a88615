package main

import (
	"os"

	cvragcmder "github.com/recruitkit/cvrag/cmd/cvrag"
)

func main() {
	cmd := cvragcmder.NewCvragCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
