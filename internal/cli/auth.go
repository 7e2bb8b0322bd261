package cli

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	aarogyam "github.com/sagarpathak0/aarogyam-go"
)

var signUpCmd = &cobra.Command{
	Use:   "signup <name> <email>",
	Short: "Create a patient account",
	Args:  cobra.ExactArgs(2),
	RunE:  runSignUp,
}

var signInCmd = &cobra.Command{
	Use:   "signin <email>",
	Short: "Sign in and store the session",
	Long: `Sign in against the backend and persist the session locally.

With --admin the hospital sign-in endpoint is used and the stored
session carries the admin role.

Examples:
  aarogyactl signin alice@example.com
  aarogyactl signin citycare@example.com --admin`,
	Args: cobra.ExactArgs(1),
	RunE: runSignIn,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	signInCmd.Flags().Bool("admin", false, "sign in as a hospital admin")
	signInCmd.Flags().String("password", "", "password (prompted when omitted)")
	signUpCmd.Flags().String("password", "", "password (prompted when omitted)")

	rootCmd.AddCommand(signUpCmd)
	rootCmd.AddCommand(signInCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// promptPassword reads a password without echoing it. A --password flag
// value wins, for scripting.
func promptPassword(cmd *cobra.Command) (string, error) {
	if pw, _ := cmd.Flags().GetString("password"); pw != "" {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func runSignUp(cmd *cobra.Command, args []string) error {
	name, email := args[0], args[1]

	password, err := promptPassword(cmd)
	if err != nil {
		return err
	}

	client, _, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Auth.SignUp(context.Background(), aarogyam.SignUpRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Account created for %s. Sign in with 'aarogyactl signin %s'.\n", colorGreen("✓"), email, email)
	return nil
}

func runSignIn(cmd *cobra.Command, args []string) error {
	email := args[0]
	admin, _ := cmd.Flags().GetBool("admin")

	password, err := promptPassword(cmd)
	if err != nil {
		return err
	}

	client, store, err := getClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var creds *aarogyam.Credentials
	if admin {
		creds, err = client.Auth.SignInAdmin(ctx, email, password)
	} else {
		creds, err = client.Auth.SignIn(ctx, email, password)
	}
	if err != nil {
		printError(err)
		return err
	}

	if err := store.Login(creds.Token, creds.User); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"user": creds.User,
			"home": aarogyam.HomeFor(&creds.User),
		})
	}

	fmt.Printf("%s Signed in as %s (%s)\n", colorGreen("✓"), creds.User.Name, creds.User.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := getSession()
	if err != nil {
		return err
	}

	if err := store.Logout(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{"status": "signed_out"})
	}

	fmt.Printf("%s Signed out\n", colorGreen("✓"))
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	store, err := getSession()
	if err != nil {
		return err
	}

	user := store.Current()
	if user == nil {
		if jsonOut {
			return printJSON(map[string]interface{}{"authenticated": false})
		}
		fmt.Println("Not signed in")
		return nil
	}

	if jsonOut {
		out := map[string]interface{}{
			"authenticated": true,
			"user":          user,
		}
		if exp, ok := store.ExpiresAt(); ok {
			out["token_expires_at"] = exp
		}
		return printJSON(out)
	}

	fmt.Printf("Name:   %s\n", user.Name)
	fmt.Printf("Email:  %s\n", user.Email)
	fmt.Printf("Role:   %s\n", user.Role)
	if exp, ok := store.ExpiresAt(); ok {
		fmt.Printf("Token expires: %s\n", exp.Format("2006-01-02 15:04:05"))
	}
	return nil
}
