package core

import (
	"fmt"
	"io"
	"os"
)

// A Printer receives the values popped by PRINT.
type Printer interface {
	Print(value int32) error
}

// WriterPrinter prints one decimal value per line.
type WriterPrinter struct {
	W io.Writer
}

// Print writes value followed by a newline.
func (p WriterPrinter) Print(value int32) error {
	w := p.W
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintln(w, value)
	return err
}
