package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the blogctl command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "blogctl",
		Short: "Command line client for blogsphere",
		Long: `blogctl talks to a blogsphere server.

Sign in once with "blogctl login"; the session is kept on disk for 24 hours
and shared by every blogctl process of the same user.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.SetIn(app.In)

	root.PersistentFlags().BoolVar(&app.JSON, "json", false, "Print results as JSON")

	root.AddCommand(
		loginCmd(app),
		signupCmd(app),
		logoutCmd(app),
		whoamiCmd(app),
		profileCmd(app),
		blogsCmd(app),
		commentsCmd(app),
		followCmd(app),
		unfollowCmd(app),
		followersCmd(app),
		followingCmd(app),
		notificationsCmd(app),
		photosCmd(app),
	)
	return root
}
