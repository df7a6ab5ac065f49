package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
)

// command is a parsed prompt line.
type command struct {
	name   string
	text   string // everything after the name and one separating space
	index  int
	field  models.Field
	value  string
	tokens models.VoiceTokens
}

// parseCommand splits a prompt line into a command and validates its arguments.
func parseCommand(line string) (command, error) {
	line = strings.TrimLeft(line, " ")
	if strings.TrimSpace(line) == "" {
		return command{}, fmt.Errorf("%w: empty command", shared.ErrMissingInput)
	}

	name, rest, _ := strings.Cut(line, " ")
	cmd := command{name: strings.ToLower(name), text: rest}

	switch cmd.name {
	case "clear", "cv", "quit", "exit":
		return cmd, nil
	case "fill", "add", "guess", "export":
		if strings.TrimSpace(rest) == "" {
			return cmd, fmt.Errorf("%w: %s needs an argument", shared.ErrMissingArgument, cmd.name)
		}
		if cmd.name != "fill" {
			cmd.text = strings.TrimSpace(rest)
		}
		return cmd, nil
	case "set":
		parts := strings.SplitN(strings.TrimSpace(rest), " ", 3)
		if len(parts) < 3 || parts[2] == "" {
			return cmd, fmt.Errorf("%w: usage: set <index> <field> <value>", shared.ErrMissingArgument)
		}
		index, err := strconv.Atoi(parts[0])
		if err != nil || index == 0 {
			return cmd, fmt.Errorf("%w: slot index %q", shared.ErrInvalidArgument, parts[0])
		}
		field, ok := models.ParseField(strings.ToLower(parts[1]))
		if !ok {
			return cmd, fmt.Errorf("%w: field %q", shared.ErrInvalidArgument, parts[1])
		}
		if index > 0 {
			index--
		}
		cmd.index, cmd.field, cmd.value = index, field, parts[2]
		return cmd, nil
	case "tokens":
		parts := strings.Split(rest, "|")
		if len(parts) != 3 {
			return cmd, fmt.Errorf("%w: usage: tokens <open>|<close>|<separator>", shared.ErrMissingArgument)
		}
		cmd.tokens = models.VoiceTokens{Open: parts[0], Close: parts[1], Separator: parts[2]}
		return cmd, nil
	default:
		return cmd, fmt.Errorf("%w: unknown command %q", shared.ErrInvalidInput, name)
	}
}
