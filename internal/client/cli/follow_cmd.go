package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func followCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "follow <user-id>",
		Short: "Follow a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if err := app.Client.Follow(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Now following %s.\n", args[0])
			return nil
		},
	}
}

func unfollowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <user-id>",
		Short: "Stop following a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if err := app.Client.Unfollow(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Unfollowed %s.\n", args[0])
			return nil
		},
	}
}

// targetUser returns args[0] or, without arguments, the signed in user.
func (a *App) targetUser(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return a.me()
}

func followersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "followers [user-id]",
		Short: "List who follows a user (default: you)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.targetUser(args)
			if err != nil {
				return err
			}
			users, err := app.Client.Followers(cmd.Context(), id)
			if err != nil {
				return err
			}
			return app.printUsers(users)
		},
	}
}

func followingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "following [user-id]",
		Short: "List who a user follows (default: you)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.targetUser(args)
			if err != nil {
				return err
			}
			users, err := app.Client.Following(cmd.Context(), id)
			if err != nil {
				return err
			}
			return app.printUsers(users)
		},
	}
}
