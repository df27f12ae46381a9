package command

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

// Options holds raw option values as read from flags or config.
type Options struct {
	Host    string
	Command string
	File    string
	UUID    string
}

// Invocation is a validated request to run one command.
type Invocation struct {
	Host    *url.URL
	Command Command
	File    string
	ID      uuid.UUID
	HasID   bool
}

// Validate checks opts and returns the Invocation they describe.
// Checks run in order: command, host, identifier text, required options.
func Validate(opts Options) (Invocation, error) {
	cmd, err := Parse(opts.Command)
	if err != nil {
		return Invocation{}, err
	}

	host, err := ParseHost(opts.Host)
	if err != nil {
		return Invocation{}, err
	}

	inv := Invocation{Host: host, Command: cmd, File: opts.File}

	if opts.UUID != "" {
		id, err := ParseIdentifier(opts.UUID)
		if err != nil {
			return Invocation{}, err
		}
		inv.ID = id
		inv.HasID = true
	}

	if cmd.NeedsFile() && inv.File == "" {
		return Invocation{}, missing(cmd, OptFile)
	}
	if cmd.NeedsID() && !inv.HasID {
		return Invocation{}, missing(cmd, OptUUID)
	}
	return inv, nil
}

func missing(cmd Command, opt string) error {
	return fmt.Errorf("%w: %s requires --%s", geoerrors.ErrUsage, cmd, opt)
}
