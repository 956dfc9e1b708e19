package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/okdaichi/dvrouter/internal/router"
	"github.com/okdaichi/dvrouter/internal/version"
)

// console is the interactive operator REPL: "routes" prints the current
// table, "neighbors" prints the configured links, "version" prints build
// metadata, and "quit" requests shutdown. Any other input is echoed back
// as unrecognized rather than treated as an error, since a typo at an
// interactive prompt should never be fatal.
type console struct {
	node      *router.Node
	neighbors router.NeighborMap
	out       io.Writer
	prompt    string
}

func newConsole(node *router.Node, neighbors router.NeighborMap, out io.Writer, prompt string) *console {
	return &console{node: node, neighbors: neighbors, out: out, prompt: prompt}
}

// run reads commands from in until EOF, "quit", or the reader errors.
func (c *console) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, c.prompt)
		if !scanner.Scan() {
			return
		}
		cmd := strings.TrimSpace(scanner.Text())
		switch cmd {
		case "":
			continue
		case "routes":
			c.printRoutes()
		case "neighbors":
			c.printNeighbors()
		case "version":
			fmt.Fprintln(c.out, version.Full())
		case "quit":
			return
		default:
			fmt.Fprintf(c.out, "unrecognized command: %s\n", cmd)
		}
	}
}

func (c *console) printRoutes() {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	enc.Encode(c.node.Snapshot())
}

func (c *console) printNeighbors() {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	enc.Encode(c.neighbors)
}
