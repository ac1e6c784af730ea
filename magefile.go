//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "voxlate"

// Default target when mage is run without arguments
var Default = Build

// Build compiles the voxlate binary into ./bin
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", filepath.Join("bin", binary), "./cmd/voxlate")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install copies the binary to $GOPATH/bin
func Install() error {
	mg.Deps(Build)

	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	dest := filepath.Join(gopath, "bin", binary)
	fmt.Println("Installing to", dest)
	return sh.Copy(dest, filepath.Join("bin", binary))
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll("bin")
}
