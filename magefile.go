//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the dvrouter binary.
func Build() error {
	fmt.Println("building dvrouter...")
	return sh.RunV("go", "build", "-o", "bin/dvrouter", ".")
}

// Test runs the test suite with the race detector enabled.
func Test() error {
	fmt.Println("running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	fmt.Println("vetting...")
	return sh.RunV("go", "vet", "./...")
}

// Run builds the binary and executes ./bin/dvrouter with no arguments. No
// flags are passed through to it, so the node it starts has neither -port
// nor -config set.
func Run() error {
	if err := Build(); err != nil {
		return err
	}
	return sh.RunV("./bin/dvrouter")
}
