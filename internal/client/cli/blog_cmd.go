package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"blogsphere/internal/client/api"
	"blogsphere/internal/envelope"
)

func blogsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blogs",
		Aliases: []string{"blog"},
		Short:   "Read and write blog posts",
	}
	cmd.AddCommand(
		blogsListCmd(app),
		blogsShowCmd(app),
		blogsCreateCmd(app),
		blogsEditCmd(app),
		blogsDeleteCmd(app),
	)
	return cmd
}

func blogsListCmd(app *App) *cobra.Command {
	var (
		user        string
		page, limit int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blogs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				res envelope.Page[api.Blog]
				err error
			)
			if user != "" {
				res, err = app.Client.BlogsByUser(cmd.Context(), user, page, limit)
			} else {
				res, err = app.Client.Blogs(cmd.Context(), page, limit)
			}
			if err != nil {
				return err
			}
			return app.printBlogs(res)
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Only blogs written by this user ID")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "Page size (max 50)")
	return cmd
}

func blogsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one blog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Client.Blog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printBlog(b)
		},
	}
}

// readContent returns inline content, or the file's contents when the value
// starts with "@". "@-" reads from stdin.
func readContent(app *App, value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}
	name := strings.TrimPrefix(value, "@")
	if name == "-" {
		data, err := io.ReadAll(app.In)
		if err != nil {
			return "", fmt.Errorf("read content from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}

func blogsCreateCmd(app *App) *cobra.Command {
	var in api.BlogInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new blog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			content, err := readContent(app, in.Content)
			if err != nil {
				return err
			}
			in.Content = content
			if in.Title == "" || in.Content == "" {
				return errors.New("--title and --content are required")
			}
			b, err := app.Client.CreateBlog(cmd.Context(), in)
			if err != nil {
				return err
			}
			if ok, err := app.emit(b); ok {
				return err
			}
			fmt.Fprintf(app.Out, "Blog %s published.\n", b.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "Title")
	cmd.Flags().StringVar(&in.Content, "content", "", "Body text, or @file to read it from a file")
	cmd.Flags().StringVar(&in.CoverImage, "cover", "", "Cover image URL")
	cmd.Flags().StringSliceVar(&in.Tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

func blogsEditCmd(app *App) *cobra.Command {
	var (
		title, content, cover string
		tags                  []string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing blog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			var patch api.BlogPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("content") {
				body, err := readContent(app, content)
				if err != nil {
					return err
				}
				patch.Content = &body
			}
			if flags.Changed("cover") {
				patch.CoverImage = &cover
			}
			if flags.Changed("tag") {
				patch.Tags = tags
			}
			if patch.Title == nil && patch.Content == nil && patch.CoverImage == nil && patch.Tags == nil {
				return errors.New("nothing to update; pass at least one flag")
			}

			b, err := app.Client.UpdateBlog(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			if ok, err := app.emit(b); ok {
				return err
			}
			fmt.Fprintf(app.Out, "Blog %s updated.\n", b.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body, or @file")
	cmd.Flags().StringVar(&cover, "cover", "", "New cover image URL")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replace tags (repeatable)")
	return cmd
}

func blogsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your blogs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if err := app.Client.DeleteBlog(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Blog %s deleted.\n", args[0])
			return nil
		},
	}
}
