package client

import (
	"context"
	"fmt"
	"strings"

	"go.miragespace.co/chordring/spec/protocol"

	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed).SprintFunc()
	valueColor = color.New(color.FgGreen).SprintFunc()
	hintColor  = color.New(color.FgYellow).SprintFunc()
)

const replUsage = "usage: SET <key> <value> | GET <key> | DELETE <key> | EXIT"

func (s *session) printError(err error) {
	fmt.Fprintf(s.Out, "%s %s\n", errorColor("Error:"), err)
}

func (s *session) set(ctx context.Context, key, value string, hasValue bool) error {
	q := &protocol.Query{
		Ty:  protocol.OperationType_SET,
		Key: []byte(key),
	}
	if hasValue {
		q.Value = []byte(value)
	}
	res, err := s.query(ctx, q)
	if err != nil {
		return err
	}
	switch {
	case res.HasError():
		fmt.Fprintf(s.Out, "%s %s\n", errorColor("Error:"), res.GetError())
	case res.HasValue():
		fmt.Fprintf(s.Out, "Previous value was: %s, inserting: %s\n", valueColor(string(res.GetValue())), valueColor(value))
	default:
		fmt.Fprintf(s.Out, "Inserting new pair (%s, %s)\n", key, valueColor(value))
	}
	return nil
}

func (s *session) get(ctx context.Context, key string) error {
	res, err := s.query(ctx, &protocol.Query{
		Ty:  protocol.OperationType_GET,
		Key: []byte(key),
	})
	if err != nil {
		return err
	}
	switch {
	case res.HasError():
		fmt.Fprintf(s.Out, "%s %s\n", errorColor("Error:"), res.GetError())
	case res.HasValue():
		fmt.Fprintf(s.Out, "Value is: %s\n", valueColor(string(res.GetValue())))
	default:
		fmt.Fprintln(s.Out, "Key not present")
	}
	return nil
}

func (s *session) delete(ctx context.Context, key string) error {
	res, err := s.query(ctx, &protocol.Query{
		Ty:  protocol.OperationType_DELETE,
		Key: []byte(key),
	})
	if err != nil {
		return err
	}
	switch {
	case res.HasError():
		fmt.Fprintf(s.Out, "%s %s\n", errorColor("Error:"), res.GetError())
	case res.HasValue():
		fmt.Fprintf(s.Out, "Deleting: (%s, %s)\n", key, valueColor(string(res.GetValue())))
	default:
		fmt.Fprintln(s.Out, "Key not present")
	}
	return nil
}

// execute runs a single REPL line. It returns false once the user asks to exit.
func (s *session) execute(ctx context.Context, line string) bool {
	words := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if words[0] == "" {
		return true
	}

	var err error
	switch op := strings.ToUpper(words[0]); {
	case op == "EXIT":
		return false
	case op == "SET" && len(words) >= 2:
		value := ""
		if len(words) == 3 {
			value = words[2]
		}
		err = s.set(ctx, words[1], value, len(words) == 3)
	case op == "GET" && len(words) == 2:
		err = s.get(ctx, words[1])
	case op == "DELETE" && len(words) == 2:
		err = s.delete(ctx, words[1])
	default:
		fmt.Fprintf(s.Out, "invalid entry, %s\n", hintColor(replUsage))
		return true
	}
	if err != nil {
		s.printError(err)
	}
	return true
}
