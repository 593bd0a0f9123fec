package receipt

import (
	"bufio"
	"io"
)

// Printer writes receipt lines to an output device.
type Printer struct {
	W io.Writer
}

// Print writes each line followed by a newline.
func (p Printer) Print(lines []string) error {
	if p.W == nil {
		return nil
	}
	bw := bufio.NewWriter(p.W)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
