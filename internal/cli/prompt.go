package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Choose asks the user to pick one option and returns its value.
// Tests replace it to script answers.
var Choose = SelectOption

// SelectOption shows a huh select list.
func SelectOption(title string, options []huh.Option[string]) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question. Tests replace it to script answers.
var Confirm = ConfirmPrompt

// ConfirmPrompt shows a huh confirm defaulting to no.
func ConfirmPrompt(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, err
	}
	return ok, nil
}
