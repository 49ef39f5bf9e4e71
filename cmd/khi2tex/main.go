// Program khi2tex parses a khi document and writes it as TeX source.
//
// Usage: khi2tex [FILE ...]
//
// If no FILEs are given, the document is read from standard input. Each
// file is parsed and rendered independently; parse or rendering errors are
// reported to standard error and cause a non-zero exit status, but do not
// stop processing of the remaining files.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/khilang/khi/pkg/khi"
	"github.com/khilang/khi/pkg/khitex"
	"github.com/pborman/getopt"
)

var stop = os.Exit

func main() {
	var help, debugAST bool
	getopt.BoolVarLong(&debugAST, "debug-ast", 0, "print the parsed document tree to stderr before emitting")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FILE ...]")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(0)
	}

	files := getopt.Args()

	failed := false
	if len(files) == 0 {
		if !process(os.Stdin, os.Stdout, debugAST) {
			failed = true
		}
	} else {
		for _, name := range files {
			if !processFile(name, os.Stdout, debugAST) {
				failed = true
			}
		}
	}
	if failed {
		stop(1)
	}
}

func processFile(name string, out io.Writer, debugAST bool) bool {
	f, err := os.Open(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	defer f.Close()
	return process(f, out, debugAST)
}

func process(in io.Reader, out io.Writer, debugAST bool) bool {
	data, err := ioutil.ReadAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	value, perr := khi.ParseValueString(string(data))
	if perr != nil {
		fmt.Fprintln(os.Stderr, khi.ErrorToString(perr))
		return false
	}
	if debugAST {
		fmt.Fprintln(os.Stderr, value.String())
	}
	tex, err := khitex.Write(value)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	fmt.Fprintln(out, tex)
	return true
}
