package choice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console asks a person at a terminal. Options are numbered from 1; an answer
// is one or more numbers separated by spaces or commas, or "s" to skip.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) RequestChoice(ctx context.Context, req Request) (Response, error) {
	fmt.Fprintf(c.out, "%s: %s\n", req.PlayerID, req.Prompt)
	for i, o := range req.Options {
		if o.Valid {
			fmt.Fprintf(c.out, "  %d) %s\n", i+1, display(o))
		} else {
			fmt.Fprintf(c.out, "  -) %s (%s)\n", display(o), o.InvalidReason)
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return Response{}, err
		}
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return Response{}, err
			}
			return Response{}, io.EOF
		}
		resp, err := c.read(req, c.in.Text())
		if err == nil {
			err = req.Validate(resp)
		}
		if err != nil {
			fmt.Fprintf(c.out, "invalid choice: %v; choose %s or \"s\" (skip)\n", err, bounds(req))
			continue
		}
		return resp, nil
	}
}

func (c *Console) read(req Request, line string) (Response, error) {
	resp := Response{RequestID: req.ID}
	line = strings.TrimSpace(line)
	if line == "s" {
		if req.Min == 0 && !req.Optional {
			return resp, nil
		}
		resp.Declined = true
		return resp, nil
	}
	for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(req.Options) {
			return resp, fmt.Errorf("%q is not an option", f)
		}
		resp.Selected = append(resp.Selected, req.Options[n-1].ID)
	}
	return resp, nil
}

func display(o Option) string {
	if o.Display != "" {
		return o.Display
	}
	return o.ID
}

func bounds(req Request) string {
	switch {
	case req.Max <= 0:
		return fmt.Sprintf("at least %d", req.Min)
	case req.Min == req.Max:
		return strconv.Itoa(req.Min)
	}
	return fmt.Sprintf("%d to %d", req.Min, req.Max)
}
