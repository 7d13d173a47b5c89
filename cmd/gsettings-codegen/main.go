// Package main is the entry point for gsettings-codegen, the
// schema-to-binding generator: it compiles a GSettings schema document
// plus a YAML generation request into a typed Go settings wrapper.
package main

func main() {
	Execute()
}
