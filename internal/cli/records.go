package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage patient health records",
	Long: `Health record commands. Records are arbitrary JSON payloads keyed
by patient email.

Examples:
  aarogyactl records add alice@example.com --data '{"diagnosis":"flu"}'
  aarogyactl records get alice@example.com
  aarogyactl records update alice@example.com r-7 --data @visit.json
  aarogyactl records delete alice@example.com r-7`,
}

var recordsAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Attach a record to a patient",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsAdd,
}

var recordsGetCmd = &cobra.Command{
	Use:   "get <email>",
	Short: "Fetch a patient's records",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsGet,
}

var recordsUpdateCmd = &cobra.Command{
	Use:   "update <email> <record-id>",
	Short: "Replace a record's payload",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecordsUpdate,
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <email> <record-id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecordsDelete,
}

func init() {
	recordsAddCmd.Flags().String("data", "", "record payload as JSON, or @file, or - for stdin")
	_ = recordsAddCmd.MarkFlagRequired("data")
	recordsUpdateCmd.Flags().String("data", "", "record payload as JSON, or @file, or - for stdin")
	_ = recordsUpdateCmd.MarkFlagRequired("data")

	recordsCmd.AddCommand(recordsAddCmd)
	recordsCmd.AddCommand(recordsGetCmd)
	recordsCmd.AddCommand(recordsUpdateCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)

	rootCmd.AddCommand(recordsCmd)
}

// readPayload resolves a --data value: a literal JSON string, @path for a
// file, or - for stdin.
func readPayload(cmd *cobra.Command) (json.RawMessage, error) {
	data, _ := cmd.Flags().GetString("data")
	switch {
	case data == "-":
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	case len(data) > 1 && data[0] == '@':
		raw, err := os.ReadFile(data[1:])
		if err != nil {
			return nil, fmt.Errorf("read payload file: %w", err)
		}
		return raw, nil
	default:
		return json.RawMessage(data), nil
	}
}

func runRecordsAdd(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(cmd)
	if err != nil {
		return err
	}

	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	result, err := client.Records.Add(context.Background(), args[0], payload)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Record added for %s\n", colorGreen("✓"), args[0])
	return nil
}

func runRecordsGet(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	records, err := client.Records.Get(context.Background(), args[0])
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"records": records,
			"count":   len(records),
		})
	}

	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}

	for _, r := range records {
		if r.ID != "" {
			fmt.Printf("%s %s\n", colorYellow("record"), r.ID)
		} else {
			fmt.Println(colorYellow("record"))
		}
		var pretty map[string]interface{}
		if err := json.Unmarshal(r.Raw, &pretty); err == nil {
			out, _ := json.MarshalIndent(pretty, "  ", "  ")
			fmt.Printf("  %s\n", out)
		} else {
			fmt.Printf("  %s\n", r.Raw)
		}
	}
	return nil
}

func runRecordsUpdate(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(cmd)
	if err != nil {
		return err
	}

	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	result, err := client.Records.Update(context.Background(), args[0], args[1], payload)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Record %s updated\n", colorGreen("✓"), args[1])
	return nil
}

func runRecordsDelete(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	result, err := client.Records.Delete(context.Background(), args[0], args[1])
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Record %s deleted\n", colorGreen("✓"), args[1])
	return nil
}
