package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func commentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment"},
		Short:   "Read and write comments",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <blog-id>",
			Short: "Show the comment thread of a blog",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				comments, err := app.Client.Comments(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return app.printComments(comments)
			},
		},
		&cobra.Command{
			Use:   "add <blog-id> <text>...",
			Short: "Comment on a blog",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.requireLogin(); err != nil {
					return err
				}
				c, err := app.Client.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return app.printComment(c)
			},
		},
		&cobra.Command{
			Use:   "reply <comment-id> <text>...",
			Short: "Reply to a comment",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.requireLogin(); err != nil {
					return err
				}
				c, err := app.Client.Reply(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return app.printComment(c)
			},
		},
		&cobra.Command{
			Use:   "edit <comment-id> <text>...",
			Short: "Change one of your comments",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.requireLogin(); err != nil {
					return err
				}
				c, err := app.Client.UpdateComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				if ok, err := app.emit(c); ok {
					return err
				}
				fmt.Fprintf(app.Out, "Comment %s updated.\n", c.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <comment-id>",
			Short: "Delete one of your comments",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.requireLogin(); err != nil {
					return err
				}
				if err := app.Client.DeleteComment(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "Comment %s deleted.\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
