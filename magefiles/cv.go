//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func cvsite(args ...string) error {
	return sh.RunV("./bin/cvsite", args...)
}

// Validate checks both résumé data files against the schema.
func Validate() error {
	mg.Deps(Build)
	return cvsite("validate")
}

// PDFs renders the PDF of every language that changed since its last build.
func PDFs() error {
	mg.Deps(Build, Init)
	return cvsite("render")
}

// Serve runs the site locally.
func Serve() error {
	mg.Deps(Build, Init)
	return cvsite("serve")
}
