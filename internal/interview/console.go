package interview

import (
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
)

// Console is a text Channel over stdout and an interactive prompt.
type Console struct {
	out io.Writer
}

// NewConsole creates a Console writing to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

func (c *Console) Say(text string) error {
	_, err := fmt.Fprintf(c.out, "\nAI Interviewer: %s\n\n", text)

	return err
}

func (c *Console) Listen() (string, error) {
	prompt := promptui.Prompt{
		Label: "Candidate",
	}

	answer, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("reading answer: %w", err)
	}

	return answer, nil
}
