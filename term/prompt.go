package term

import (
	"fmt"
	"strings"

	"github.com/creativeprojects/mailsweep/lib"
	"github.com/pterm/pterm"
)

// Prompter asks the questions on the terminal
type Prompter struct{}

func (Prompter) Days(defaultDays int) (int, error) {
	input, err := pterm.DefaultInteractiveTextInput.Show(fmt.Sprintf("Number of days (%d)", defaultDays))
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(input) == "" {
		return defaultDays, nil
	}
	return lib.ParseDays(input)
}

func (Prompter) Confirm(question string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(question)
}
