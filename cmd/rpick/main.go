package main

import (
	"os"

	"github.com/gdamore/tcell/v2"
)

func main() {
	// UTF-8 fallback keeps non-ASCII file names readable on odd locales.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
