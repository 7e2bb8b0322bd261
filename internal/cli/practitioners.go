package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	aarogyam "github.com/sagarpathak0/aarogyam-go"
)

var practitionersCmd = &cobra.Command{
	Use:   "practitioners",
	Short: "Register and list practitioners",
	Long: `Practitioner commands.

Examples:
  aarogyactl practitioners register "Dr. Rao" rao@example.com --speciality cardiology
  aarogyactl practitioners list`,
}

var practitionersRegisterCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Register a practitioner (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPractitionersRegister,
}

var practitionersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List practitioners",
	RunE:  runPractitionersList,
}

func init() {
	practitionersRegisterCmd.Flags().String("speciality", "", "practitioner speciality")
	_ = practitionersRegisterCmd.MarkFlagRequired("speciality")

	practitionersCmd.AddCommand(practitionersRegisterCmd)
	practitionersCmd.AddCommand(practitionersListCmd)

	rootCmd.AddCommand(practitionersCmd)
}

func runPractitionersRegister(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAdmin(store); err != nil {
		return err
	}

	speciality, _ := cmd.Flags().GetString("speciality")

	result, err := client.Practitioners.Register(context.Background(), aarogyam.RegisterPractitionerRequest{
		Name:       args[0],
		Email:      args[1],
		Speciality: speciality,
	})
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Practitioner registered: %s (%s)\n", colorGreen("✓"), args[0], speciality)
	return nil
}

func runPractitionersList(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	practitioners, err := client.Practitioners.List(context.Background())
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"practitioners": practitioners,
			"count":         len(practitioners),
		})
	}

	if len(practitioners) == 0 {
		fmt.Println("No practitioners found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "NAME", "EMAIL", "SPECIALITY")
	for _, p := range practitioners {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", truncate(p.ID, 12), p.Name, p.Email, p.Speciality)
	}
	return w.Flush()
}
