//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildEvaluator)
	fmt.Println("Compilation finished")
	return nil
}

func BuildEvaluator() error {
	fmt.Println("Building evaluator executable...")
	return goCommand("build", "-o", "./bin/evaluator", "./evaluator")
}

// Test runs the unit tests. HDF5 headers are needed to build the packages.
func Test() error {
	fmt.Println("Running tests...")
	return goCommand("test", "./...")
}

// Generate refreshes the gomock mocks.
func Generate() error {
	fmt.Println("Generating mocks...")
	return goCommand("generate", "./pkg/...")
}

func goCommand(args ...string) error {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
