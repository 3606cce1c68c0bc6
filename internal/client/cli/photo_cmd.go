package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"blogsphere/internal/client/api"
)

func photosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "photos",
		Aliases: []string{"photo"},
		Short:   "Manage your photo gallery",
	}
	cmd.AddCommand(
		photosListCmd(app),
		photosUploadCmd(app),
		photosGetCmd(app),
		photosDeleteCmd(app),
	)
	return cmd
}

func photosListCmd(app *App) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a gallery (default: yours)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				photos []api.Photo
				err    error
			)
			if user != "" {
				photos, err = app.Client.PhotosByUser(cmd.Context(), user)
			} else {
				if err := app.requireLogin(); err != nil {
					return err
				}
				photos, err = app.Client.MyPhotos(cmd.Context())
			}
			if err != nil {
				return err
			}
			return app.printPhotos(photos)
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Gallery owner ID")
	return cmd
}

func photosUploadCmd(app *App) *cobra.Command {
	var caption string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open photo: %w", err)
			}
			defer f.Close()

			name := filepath.Base(args[0])
			p, err := app.Client.UploadPhoto(cmd.Context(), name, mime.TypeByExtension(filepath.Ext(name)), caption, f)
			if err != nil {
				return err
			}
			if ok, err := app.emit(p); ok {
				return err
			}
			fmt.Fprintf(app.Out, "Photo %s uploaded (%d bytes).\n", p.ID, p.Size)
			return nil
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "Caption")
	return cmd
}

func photosGetCmd(app *App) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Download a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = args[0]
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			n, err := app.Client.PhotoContent(cmd.Context(), args[0], f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(output)
				return err
			}
			fmt.Fprintf(app.Out, "Saved %s (%d bytes).\n", output, n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default: the photo ID)")
	return cmd
}

func photosDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if err := app.Client.DeletePhoto(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Photo %s deleted.\n", args[0])
			return nil
		},
	}
}
