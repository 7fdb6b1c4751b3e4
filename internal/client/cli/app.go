package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dmitrijs2005/contactbook/internal/client/client"
	"github.com/dmitrijs2005/contactbook/internal/client/config"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

var (
	errNotLoggedIn    = errors.New("not logged in, run: login <email>")
	errSessionExpired = errors.New("session expired or invalid, run: login <email>")
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, errors.New("server URL is not set")
	}
	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	return newApp(c, api, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: api, reader: bufio.NewReader(in), out: out}
}

// command describes one CLI command. nargs is the exact number of
// positional arguments, or -1 for at least one.
type command struct {
	usage string
	help  string
	nargs int
	auth  bool
	run   func(a *App, ctx context.Context, args []string) error
}

func commands() map[string]command {
	return map[string]command{
		"register":       {"register <email>", "create an account", 1, false, (*App).register},
		"login":          {"login <email>", "log in and remember the session", 1, false, (*App).login},
		"logout":         {"logout", "forget the saved session", 0, false, (*App).logout},
		"ping":           {"ping", "check that the server is reachable", 0, false, (*App).ping},
		"contacts":       {"contacts", "list your contacts", 0, true, (*App).listContacts},
		"show":           {"show <id>", "show a contact and its image", 1, true, (*App).showContact},
		"add-contact":    {"add-contact", "create a contact interactively", 0, true, (*App).addContact},
		"edit-contact":   {"edit-contact <id> field=value...", "change name, phone or address", -1, true, (*App).editContact},
		"delete-contact": {"delete-contact <id>", "delete a contact and its image", 1, true, (*App).deleteContact},
		"upload":         {"upload <contact-id> <path>", "attach a jpg, jpeg, png or webp image", 2, true, (*App).upload},
		"file":           {"file <contact-id>", "show the image URL of a contact", 1, true, (*App).showFile},
		"delete-file":    {"delete-file <contact-id>", "remove the image of a contact", 1, true, (*App).deleteFile},
	}
}

// Run executes the command named in the config arguments.
func (a *App) Run(ctx context.Context) error {
	args := a.config.Args
	if len(args) == 0 || args[0] == "help" {
		a.printHelp()
		return nil
	}

	cmd, ok := commands()[args[0]]
	if !ok {
		a.printHelp()
		return fmt.Errorf("unknown command %q", args[0])
	}

	params := args[1:]
	if (cmd.nargs >= 0 && len(params) != cmd.nargs) || (cmd.nargs < 0 && len(params) == 0) {
		return fmt.Errorf("usage: %s", cmd.usage)
	}

	if cmd.auth {
		token, err := client.LoadToken(a.config.TokenFile)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return errNotLoggedIn
			}
			return fmt.Errorf("error reading token file: %w", err)
		}
		a.client.SetToken(token)
	}

	err := cmd.run(a, ctx, params)
	if cmd.auth && errors.Is(err, common.ErrUnauthorized) {
		return errSessionExpired
	}
	return err
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Usage: contactbook-cli [-a server-url] [-t token-file] [-w timeout] <command> [args]")
	fmt.Fprintln(a.out, "\nCommands:")

	table := commands()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", table[name].usage, table[name].help)
	}
	_ = tw.Flush()
}

func (a *App) ping(ctx context.Context, _ []string) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}
