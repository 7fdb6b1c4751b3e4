package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/contactbook/internal/client/client"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

func (a *App) listContacts(ctx context.Context, _ []string) error {
	list, err := a.client.ListContacts(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No contacts yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tADDRESS")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Address)
	}
	return tw.Flush()
}

func (a *App) printContact(c *client.Contact) {
	fmt.Fprintf(a.out, "ID:      %s\n", c.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", c.Name)
	fmt.Fprintf(a.out, "Phone:   %s\n", c.Phone)
	fmt.Fprintf(a.out, "Address: %s\n", c.Address)
}

func (a *App) showContact(ctx context.Context, args []string) error {
	c, err := a.client.GetContact(ctx, args[0])
	if err != nil {
		return err
	}
	a.printContact(c)

	f, err := a.client.GetFile(ctx, c.ID)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Image:   %s\n", a.client.FileURL(f))
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Image:   none")
	default:
		return err
	}
	return nil
}

func (a *App) addContact(ctx context.Context, _ []string) error {
	var in client.ContactInput

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter name", &in.Name},
		{"Enter phone", &in.Phone},
		{"Enter address", &in.Address},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	c, err := a.client.CreateContact(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created contact %s\n", c.ID)
	return nil
}

// editContact applies name=, phone= and address= assignments.
func (a *App) editContact(ctx context.Context, args []string) error {
	id, assignments := args[0], args[1:]
	if len(assignments) == 0 {
		return errors.New("nothing to change, use field=value (name, phone, address)")
	}

	var patch client.ContactPatch
	for _, kv := range assignments {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("expected field=value, got %q", kv)
		}
		v := value
		switch key {
		case "name":
			patch.Name = &v
		case "phone":
			patch.Phone = &v
		case "address":
			patch.Address = &v
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}

	c, err := a.client.UpdateContact(ctx, id, patch)
	if err != nil {
		return err
	}
	a.printContact(c)
	return nil
}

func (a *App) deleteContact(ctx context.Context, args []string) error {
	if err := a.client.DeleteContact(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Contact deleted")
	return nil
}
