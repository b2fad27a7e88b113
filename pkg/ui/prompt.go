package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm writes question to the console and reads one line from in.
// Only a case-insensitive "y" followed by the line terminator counts as
// consent. Surrounding spaces, EOF and read errors are all refusals.
func Confirm(in io.Reader, question string) bool {
	fmt.Fprint(output, question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(output)
		return false
	}

	return strings.EqualFold(strings.TrimRight(line, "\r\n"), "y")
}
