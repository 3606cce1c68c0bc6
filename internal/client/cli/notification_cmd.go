package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"blogsphere/internal/client/api"
)

func notificationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Follow, comment and reply notifications",
	}
	cmd.AddCommand(
		notificationsListCmd(app),
		notificationsReadCmd(app),
		notificationsWatchCmd(app),
	)
	return cmd
}

func notificationsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your latest notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			items, err := app.Client.Notifications(cmd.Context())
			if err != nil {
				return err
			}
			return app.printNotifications(items)
		},
	}
}

func notificationsReadCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "read [id]",
		Short: "Mark one notification, or --all, as read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			switch {
			case all:
				n, err := app.Client.MarkAllNotificationsRead(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "Marked %d notifications as read.\n", n)
			case len(args) == 1:
				if err := app.Client.MarkNotificationRead(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "Notification %s marked as read.\n", args[0])
			default:
				return errors.New("pass a notification id or --all")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Mark every notification as read")
	return cmd
}

func notificationsWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print notifications as they arrive",
		Long: `Keep a live connection open and print each notification as it arrives.

The command stops when interrupted, when the server ends the session, or
when another blogctl process logs out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if w, ok := app.KV.(watcher); ok {
				go app.stopWhenSessionEnds(ctx, w, cancel)
			}

			fmt.Fprintln(app.Err, "Watching notifications. Press Ctrl+C to stop.")
			err := app.Client.WatchNotifications(ctx, func(n api.Notification) {
				app.printNotification(n)
			})
			if err != nil && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
}

// stopWhenSessionEnds cancels the watch once the stored session is gone.
func (a *App) stopWhenSessionEnds(ctx context.Context, w watcher, cancel context.CancelFunc) {
	err := w.Watch(ctx, func() {
		if a.Auth.Refresh().IsAuthenticated {
			return
		}
		fmt.Fprintln(a.Err, "Session ended. Stopping.")
		cancel()
	})
	if err != nil {
		a.Log.Warn("session watch stopped", "error", err)
	}
}
