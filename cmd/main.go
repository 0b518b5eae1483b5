package main

import (
	"fmt"
	"os"

	"github.com/sigildev/sigil/cmd/cmd"
	"github.com/sigildev/sigil/internal/env"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func PrintLogo() {
	fmt.Println("     _       _ _ ")
	fmt.Println(" ___(_) __ _(_) |")
	fmt.Println("/ __| |/ _` | | |")
	fmt.Println("\\__ \\ | (_| | | |")
	fmt.Println("|___/_|\\__, |_|_|")
	fmt.Println("       |___/     ")
	fmt.Println()
	fmt.Println("File type verification by magic number")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
