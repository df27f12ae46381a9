// Package command validates geoclient command-line input into an Invocation.
package command

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

// DefaultHost is the API endpoint used when no host is given.
const DefaultHost = "http://127.0.0.1:5000/api/"

// Command names one client operation.
type Command string

const (
	Add      Command = "add"
	Delete   Command = "delete"
	Update   Command = "update"
	GetUUID  Command = "get_uuid"
	GetUUIDs Command = "get_uuids"
)

// Commands lists every supported command in help order.
var Commands = []Command{Add, Delete, Update, GetUUID, GetUUIDs}

// Option names as they appear on the command line.
const (
	OptHost    = "host"
	OptCommand = "command"
	OptFile    = "file"
	OptUUID    = "uuid"
)

// Names returns the command names joined for help text.
func Names() string {
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = string(c)
	}
	return strings.Join(names, ",")
}

// Parse resolves a command name.
func Parse(name string) (Command, error) {
	if name == "" {
		return "", fmt.Errorf("%w: missing %s value", geoerrors.ErrUsage, OptCommand)
	}
	for _, c := range Commands {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown command %q, want one of [%s]", geoerrors.ErrUsage, name, Names())
}

// NeedsFile reports whether the command uploads a feature file.
func (c Command) NeedsFile() bool {
	return c == Add || c == Update
}

// NeedsID reports whether the command targets an existing feature.
func (c Command) NeedsID() bool {
	return c == Delete || c == Update || c == GetUUID
}

// ExpectsIdentifier reports whether the response body is an identifier
// rather than text passed through verbatim.
func (c Command) ExpectsIdentifier() bool {
	return c == Add || c == Update || c == Delete
}

// ParseHost parses the API host. An empty value selects DefaultHost.
func ParseHost(raw string) (*url.URL, error) {
	if raw == "" {
		raw = DefaultHost
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", geoerrors.ErrInvalidHost, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q: scheme must be http or https", geoerrors.ErrInvalidHost, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q: missing host", geoerrors.ErrInvalidHost, raw)
	}
	if u.Fragment != "" {
		return nil, fmt.Errorf("%w: %q: fragments are not allowed", geoerrors.ErrInvalidHost, raw)
	}
	return u, nil
}

// ParseIdentifier parses a feature identifier. Only the canonical
// 8-4-4-4-12 form is accepted, in either case.
func ParseIdentifier(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q: %w", geoerrors.ErrInvalidIdentifier, raw, err)
	}
	if len(raw) != 36 || !strings.EqualFold(id.String(), raw) {
		return uuid.Nil, fmt.Errorf("%w: %q: not in canonical form", geoerrors.ErrInvalidIdentifier, raw)
	}
	return id, nil
}
