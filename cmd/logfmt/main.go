// Command logfmt converts log message templates between the human
// "{expression}" form and the positional "$N" wire form.
//
//	logfmt split 'a={a}, b={b}'
//	logfmt merge 'a=$0, b=$1' a b
package main

import (
	"fmt"
	"os"

	"github.com/snapdbg/snapdbg"
)

func main() {
	if len(os.Args) < 3 {
		usage()
	}

	switch os.Args[1] {
	case "split":
		format, expressions, err := snapdbg.SplitLogTemplate(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "logfmt: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("format:      %s\n", format)
		for i, e := range expressions {
			fmt.Printf("expression %d: %s\n", i, e)
		}
	case "merge":
		fmt.Println(snapdbg.MergeLogTemplate(os.Args[2], os.Args[3:]))
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: logfmt split <template> | logfmt merge <format> [expression ...]")
	os.Exit(2)
}
