package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// passwordOrPrompt returns given when it is set, otherwise it reads a
// password from the terminal without echo.
func passwordOrPrompt(given string, w io.Writer) (string, error) {
	if given != "" {
		return given, nil
	}

	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)

	return string(pw), nil
}
