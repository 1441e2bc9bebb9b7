package scaffold

import (
	"fmt"
	"go/build"
	"go/token"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`^[_a-zA-Z]\w*$`)

// ValidateName reports whether name is usable as a project name: an
// identifier that is neither a Go keyword nor the import path of a standard
// library package it would shadow.
func ValidateName(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q is not an identifier", ErrInvalidName, name)
	}
	if token.IsKeyword(name) {
		return fmt.Errorf("%w: %q is a Go keyword", ErrInvalidName, name)
	}
	if shadowsStdlib(name) {
		return fmt.Errorf("%w: %q shadows a standard library package", ErrInvalidName, name)
	}
	return nil
}

func shadowsStdlib(name string) bool {
	pkg, err := build.Default.Import(name, "", build.FindOnly)
	return err == nil && pkg.Goroot
}
