package main

import (
	"os"

	mnemocmder "github.com/mnemo-ai/mnemo/cmd/mnemo"
)

func main() {
	cmd := mnemocmder.NewMnemoCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
