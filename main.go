package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/merkispavel/colang/internal/compiler"
)

const version = "0.1.0"

func main() {
	var outPath string
	showVersion := flag.Bool("v", false, "Show version")
	flag.BoolVar(showVersion, "version", false, "Show version")
	flag.StringVar(&outPath, "o", "", "Target C file path")
	flag.StringVar(&outPath, "out", "", "Target C file path")

	flag.Parse()

	if *showVersion {
		fmt.Printf("colang compiler version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: colang [options] <file.co>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(2)
	}

	sourcePath := args[0]
	if outPath == "" {
		outPath = defaultOutPath(sourcePath)
	}

	result := compiler.Compile(compiler.Options{
		SourcePath: sourcePath,
		OutPath:    outPath,
	})

	if !result.Success {
		os.Exit(1)
	}
}

// defaultOutPath replaces the source extension with .c, or appends .c
// when the source has no extension.
func defaultOutPath(sourcePath string) string {
	if i := strings.LastIndexByte(sourcePath, '.'); i > strings.LastIndexByte(sourcePath, '/') {
		return sourcePath[:i] + ".c"
	}
	return sourcePath + ".c"
}
