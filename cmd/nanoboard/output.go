package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/arthur-debert/nanoboard/types"
	"gopkg.in/yaml.v3"
)

// render writes v as JSON or YAML, or calls text for the default format.
func (c *CLI) render(v any, text func(w io.Writer) error) error {
	switch c.format {
	case "", "text":
		return text(c.out)
	case "json":
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		data, err := toYAML(v)
		if err != nil {
			return err
		}
		_, err = c.out.Write(data)
		return err
	default:
		return NewValidationError("render output", "format", c.format, "Use one of: text, json, yaml")
	}
}

// toYAML renders v through its JSON form so YAML keys match the
// persisted field names and keep their order.
func toYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert output: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle drops the flow and quoting styles JSON input leaves on nodes.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// report prints the outcome of a mutation, or returns it as an error
// when the store rejected it.
func (c *CLI) report(operation string, res store.Result) error {
	if err := resultError(operation, res); err != nil {
		return err
	}
	return c.render(res, func(w io.Writer) error {
		switch {
		case res.Outcome == store.NoChange:
			_, err := fmt.Fprintf(w, "nothing to do: %s\n", res.Reason)
			return err
		case res.ID != "":
			_, err := fmt.Fprintf(w, "%s %s\n", res.Op, res.ID)
			return err
		default:
			_, err := fmt.Fprintln(w, res.Op)
			return err
		}
	})
}

func writeBoardTable(w io.Writer, boards []*types.Board) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLISTS\tCARDS\tFLAGS")
	for _, b := range boards {
		cards := 0
		for _, l := range b.Lists {
			if l != nil {
				cards += len(l.Cards)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", b.ID, b.Title, len(b.Lists), cards, boardFlags(b))
	}
	return tw.Flush()
}

func boardFlags(b *types.Board) string {
	switch {
	case b.IsStarred && b.IsClosed:
		return "starred,closed"
	case b.IsStarred:
		return "starred"
	case b.IsClosed:
		return "closed"
	default:
		return "-"
	}
}
