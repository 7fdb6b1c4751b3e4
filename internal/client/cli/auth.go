package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/client/client"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) readPassword() (string, error) {
	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)

	if len(pw) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(pw), nil
}

func (a *App) register(ctx context.Context, args []string) error {
	password, err := a.readPassword()
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, args[0], password); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s. Log in with: login %s\n", args[0], args[0])
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	password, err := a.readPassword()
	if err != nil {
		return err
	}

	token, err := a.client.Login(ctx, args[0], password)
	if err != nil {
		return err
	}

	if err := client.SaveToken(a.config.TokenFile, token); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", args[0])
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	if err := client.ClearToken(a.config.TokenFile); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
