package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate against the prediction service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		_, mgr, err := newClient(ctx, st)
		if err != nil {
			return err
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		sess, err := mgr.Login(ctx, args[0], password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the local session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		_, mgr, err := newClient(ctx, st)
		if err != nil {
			return err
		}

		if err := mgr.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <name> <email>",
	Short: "Register a new account and log in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		_, mgr, err := newClient(ctx, st)
		if err != nil {
			return err
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return eris.New("passwords do not match")
		}

		sess, err := mgr.Signup(ctx, args[0], args[1], password)
		if err != nil {
			return err
		}

		fmt.Printf("Account created. Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
		return nil
	},
}

// readPassword prompts on stderr and reads without echo when stdin is a
// terminal, falling back to a plain line read otherwise.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", eris.Wrap(err, "read password")
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", eris.Wrap(err, "read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, signupCmd)
}
