package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/identity"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		email, _ := cmd.Flags().GetString("email")
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		if err := d.identity.SignIn(cmd.Context(), email, password); err != nil {
			return authError(d, err)
		}
		u, _ := d.identity.User()
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", u.Name, u.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		in := identity.SignUpInput{}
		in.Name, _ = cmd.Flags().GetString("name")
		in.Email, _ = cmd.Flags().GetString("email")
		in.UserTypeID, _ = cmd.Flags().GetInt("user-type")
		if cmd.Flags().Changed("age") {
			age, _ := cmd.Flags().GetInt("age")
			in.Age = &age
		}
		if cmd.Flags().Changed("education-level") {
			lvl, _ := cmd.Flags().GetInt("education-level")
			in.EducationLevelID = &lvl
		}
		if in.Password, err = readPassword(cmd); err != nil {
			return err
		}
		if err := d.identity.SignUp(cmd.Context(), in); err != nil {
			return authError(d, err)
		}
		u, _ := d.identity.User()
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Your account is ready.\n", u.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		if !d.identity.IsAuthenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		d.identity.SignOut()
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, setupOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		u, err := d.requireUser()
		if err != nil {
			return err
		}
		return render(cmd, u, func(t table.Writer) {
			t.AppendRows([]table.Row{
				{"ID", u.ID},
				{"Name", u.Name},
				{"Email", u.Email},
				{"Member since", u.CreatedAt},
			})
		})
	},
}

// readPassword takes the password from --password, YETRIA_PASSWORD or
// standard input, in that order. A terminal prompt does not echo; piped
// input is read as one line.
func readPassword(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("password"); p != "" {
		return p, nil
	}
	if p := os.Getenv("YETRIA_PASSWORD"); p != "" {
		return p, nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// authError prefers the identity store's localized message.
func authError(d *deps, err error) error {
	var verr *identity.ValidationError
	if errors.As(err, &verr) || api.KindOf(err) != api.KindUnknown {
		if msg := d.identity.ErrorMessage(); msg != "" {
			return errors.New(msg)
		}
	}
	return err
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().String("email", "", "Account email")
		c.Flags().String("password", "", "Account password (prompted when omitted)")
	}
	registerCmd.Flags().String("name", "", "Full name")
	registerCmd.Flags().Int("age", 0, "Age")
	registerCmd.Flags().Int("user-type", identity.DefaultUserTypeID, "User type id")
	registerCmd.Flags().Int("education-level", 0, "Education level id")

	addOutputFlag(whoamiCmd)
}
