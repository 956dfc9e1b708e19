package main

import (
	"fmt"
	"os"

	"github.com/okdaichi/dvrouter/internal/cli"
	"github.com/okdaichi/dvrouter/internal/version"
)

// runRouter is overridable so run can be unit-tested without starting a
// real UDP socket.
var runRouter = cli.Run

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command logic and returns an exit code (0 = success).
// Keeping this function small makes unit-testing straightforward.
func run(args []string) int {
	for _, a := range args {
		if a == "-version" || a == "--version" {
			fmt.Println(version.Full())
			return 0
		}
	}

	if err := runRouter(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		printUsage()
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: dvrouter -port N [-neighbor host:port=cost ...] [-admin addr]")
	fmt.Fprintln(os.Stderr, "   or: dvrouter -config path.yaml")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -port int        local UDP port to bind")
	fmt.Fprintln(os.Stderr, "  -neighbor value  neighbor in host:port=cost form; may be repeated")
	fmt.Fprintln(os.Stderr, "  -admin string    optional address for the read-only admin HTTP surface")
	fmt.Fprintln(os.Stderr, "  -config string   path to a YAML config file (mutually exclusive with -neighbor)")
	fmt.Fprintln(os.Stderr, "  -version         print build version information and exit")
}
