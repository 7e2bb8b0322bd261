package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	aarogyam "github.com/sagarpathak0/aarogyam-go"
)

var hospitalsCmd = &cobra.Command{
	Use:   "hospitals",
	Short: "Register and list hospitals",
	Long: `Hospital commands.

Examples:
  aarogyactl hospitals register "City Care" citycare@example.com
  aarogyactl hospitals list`,
}

var hospitalsRegisterCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Register a hospital account",
	Args:  cobra.ExactArgs(2),
	RunE:  runHospitalsRegister,
}

var hospitalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered hospitals",
	RunE:  runHospitalsList,
}

func init() {
	hospitalsRegisterCmd.Flags().String("password", "", "password (prompted when omitted)")

	hospitalsCmd.AddCommand(hospitalsRegisterCmd)
	hospitalsCmd.AddCommand(hospitalsListCmd)

	rootCmd.AddCommand(hospitalsCmd)
}

func runHospitalsRegister(cmd *cobra.Command, args []string) error {
	password, err := promptPassword(cmd)
	if err != nil {
		return err
	}

	client, _, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Hospitals.Register(context.Background(), aarogyam.RegisterHospitalRequest{
		Name:     args[0],
		Email:    args[1],
		Password: password,
	})
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Hospital registered: %s\n", colorGreen("✓"), args[0])
	if result.Message != "" {
		fmt.Printf("  %s\n", result.Message)
	}
	return nil
}

func runHospitalsList(cmd *cobra.Command, args []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	hospitals, err := client.Hospitals.List(context.Background())
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"hospitals": hospitals,
			"count":     len(hospitals),
		})
	}

	if len(hospitals) == 0 {
		fmt.Println("No hospitals found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "NAME", "EMAIL")
	for _, h := range hospitals {
		fmt.Fprintf(w, "%s\t%s\t%s\n", truncate(h.ID, 12), h.Name, h.Email)
	}
	return w.Flush()
}
