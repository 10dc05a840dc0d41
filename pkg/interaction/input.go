// pkg/interaction/input.go

package interaction

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// testStdin overrides stdin in tests.
var testStdin io.Reader

func reader() *bufio.Reader {
	if testStdin != nil {
		return bufio.NewReader(testStdin)
	}
	return bufio.NewReader(os.Stdin)
}

// IsTerminal reports whether stdin is attached to a TTY. Interactive mode
// refuses to run without one instead of hanging on a closed pipe.
func IsTerminal() bool {
	if testStdin != nil {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptInput displays a prompt and reads a line, falling back to defaultVal
// on empty input.
func PromptInput(prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Printf("%s: ", prompt)
	}
	input, _ := reader().ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// PromptRequired keeps asking until a non-empty value is entered.
func PromptRequired(label string) string {
	r := reader()
	for {
		fmt.Printf("%s: ", label)
		text, err := r.ReadString('\n')
		text = strings.TrimSpace(text)
		if text != "" {
			return text
		}
		if err != nil {
			return ""
		}
		fmt.Println("Input cannot be empty.")
	}
}

// PromptYesNo asks a yes/no question with a default answer.
func PromptYesNo(label string, defaultYes bool) bool {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	fmt.Printf("%s [%s]: ", label, hint)
	input, _ := reader().ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

// PromptSelect shows a numbered menu and returns the chosen option. Input may
// be the option number or its exact text. defaultIdx preselects an entry for
// empty input; pass a negative value to require a choice.
func PromptSelect(label string, options []string, defaultIdx int) (string, error) {
	if len(options) == 0 {
		return "", cerr.New("no options to select from")
	}

	fmt.Println(label)
	for i, opt := range options {
		marker := " "
		if i == defaultIdx {
			marker = "*"
		}
		fmt.Printf("  %s %d) %s\n", marker, i+1, opt)
	}

	r := reader()
	for {
		if defaultIdx >= 0 && defaultIdx < len(options) {
			fmt.Printf("Select [1-%d, default %d]: ", len(options), defaultIdx+1)
		} else {
			fmt.Printf("Select [1-%d]: ", len(options))
		}

		input, err := r.ReadString('\n')
		input = strings.TrimSpace(input)

		if input == "" && defaultIdx >= 0 && defaultIdx < len(options) {
			return options[defaultIdx], nil
		}
		if n, convErr := parseIndex(input, len(options)); convErr == nil {
			return options[n], nil
		}
		for _, opt := range options {
			if input == opt {
				return opt, nil
			}
		}
		if err != nil {
			return "", cerr.Wrap(err, "read selection")
		}
		fmt.Println("Invalid selection.")
	}
}
