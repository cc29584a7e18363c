package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm prints question with a [y/N] suffix and reads the answer from in.
// Anything but y/yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)

	reader := bufio.NewReader(in)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes"
}
