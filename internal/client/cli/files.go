package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

func (a *App) upload(ctx context.Context, args []string) error {
	contactID, path := args[0], args[1]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := a.client.UploadFile(ctx, contactID, filepath.Base(path), f)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded: %s\n", a.client.FileURL(info))
	return nil
}

func (a *App) showFile(ctx context.Context, args []string) error {
	info, err := a.client.GetFile(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.client.FileURL(info))
	return nil
}

func (a *App) deleteFile(ctx context.Context, args []string) error {
	if err := a.client.DeleteFile(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "File deleted")
	return nil
}
