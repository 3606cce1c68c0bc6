package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"blogsphere/internal/client/api"
	"blogsphere/internal/client/session"
)

func loginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(app.In, app.Err, "Password: ")
			if err != nil {
				return err
			}
			res, err := app.Client.Login(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			app.Auth.Login(res.Token, res.User)
			app.Log.Debug("logged in", "user", res.User.ID)

			if ok, err := app.emit(res.User); ok {
				return err
			}
			fmt.Fprintf(app.Out, "Logged in as %s (%s).\n", res.User.UserName, res.User.Email)
			return nil
		},
	}
}

func signupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <email> <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(app.In, app.Err, "Choose a password: ")
			if err != nil {
				return err
			}
			u, err := app.Client.Signup(cmd.Context(), args[0], password, args[1])
			if err != nil {
				return fmt.Errorf("signup: %w", err)
			}
			if ok, err := app.emit(u); ok {
				return err
			}
			fmt.Fprintf(app.Out, "Account %s created. Run `blogctl login %s` to sign in.\n", u.UserName, u.Email)
			return nil
		},
	}
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and clear the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Auth.Current().IsAuthenticated {
				fmt.Fprintln(app.Out, "Not logged in.")
				return nil
			}
			// The local session goes away even if the server call fails.
			err := app.Client.Logout(cmd.Context())
			app.Auth.Logout()
			if err != nil && !errors.Is(err, api.ErrUnauthorized) {
				app.Log.Warn("server logout failed", "error", err)
			}
			fmt.Fprintln(app.Out, "Logged out.")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			u, err := app.Client.Me(cmd.Context())
			if err != nil {
				return err
			}
			app.Auth.SetUser(u)
			return app.printUser(u)
		},
	}
}

func profileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}
	cmd.AddCommand(profileUpdateCmd(app))
	return cmd
}

func profileUpdateCmd(app *App) *cobra.Command {
	var userName, avatar, banner, description string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			var patch session.UserPatch
			flags := cmd.Flags()
			if flags.Changed("username") {
				patch.UserName = &userName
			}
			if flags.Changed("avatar") {
				patch.Avatar = &avatar
			}
			if flags.Changed("banner") {
				patch.Banner = &banner
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if patch.Empty() {
				return errors.New("nothing to update; pass at least one flag")
			}

			if _, err := app.Client.UpdateMe(cmd.Context(), patch); err != nil {
				return err
			}
			s := app.Auth.UpdateUser(patch)
			if s.User == nil {
				return nil
			}
			return app.printUser(*s.User)
		},
	}

	cmd.Flags().StringVar(&userName, "username", "", "Display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar image URL")
	cmd.Flags().StringVar(&banner, "banner", "", "Banner image URL")
	cmd.Flags().StringVar(&description, "description", "", "About text")
	return cmd
}
