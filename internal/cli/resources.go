package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	aarogyam "github.com/sagarpathak0/aarogyam-go"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Manage FHIR resources",
	Long: `FHIR resource commands. Resources are opaque JSON objects carrying
a resourceType discriminator and an id.

Examples:
  aarogyactl resources add --data @observation.json
  aarogyactl resources get Observation o-17
  aarogyactl resources list Observation
  aarogyactl resources filter Patient --field gender --value female
  aarogyactl resources delete Observation o-17`,
}

var resourcesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a resource",
	RunE:  runResourcesAdd,
}

var resourcesGetCmd = &cobra.Command{
	Use:   "get <type> <id>",
	Short: "Fetch one resource",
	Args:  cobra.ExactArgs(2),
	RunE:  runResourcesGet,
}

var resourcesListCmd = &cobra.Command{
	Use:   "list <type>",
	Short: "List resources of a type",
	Args:  cobra.ExactArgs(1),
	RunE:  runResourcesList,
}

var resourcesFilterCmd = &cobra.Command{
	Use:   "filter <type>",
	Short: "Filter resources on a field value",
	Args:  cobra.ExactArgs(1),
	RunE:  runResourcesFilter,
}

var resourcesDeleteCmd = &cobra.Command{
	Use:   "delete <type> <id>",
	Short: "Delete a resource (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runResourcesDelete,
}

func init() {
	resourcesAddCmd.Flags().String("data", "", "resource payload as JSON, or @file, or - for stdin")
	_ = resourcesAddCmd.MarkFlagRequired("data")

	resourcesFilterCmd.Flags().String("field", "", "field to match")
	resourcesFilterCmd.Flags().String("value", "", "value to match")
	_ = resourcesFilterCmd.MarkFlagRequired("field")
	_ = resourcesFilterCmd.MarkFlagRequired("value")

	resourcesCmd.AddCommand(resourcesAddCmd)
	resourcesCmd.AddCommand(resourcesGetCmd)
	resourcesCmd.AddCommand(resourcesListCmd)
	resourcesCmd.AddCommand(resourcesFilterCmd)
	resourcesCmd.AddCommand(resourcesDeleteCmd)

	rootCmd.AddCommand(resourcesCmd)
}

func runResourcesAdd(cmd *cobra.Command, args []string) error {
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

	res, err := client.Resources.Add(context.Background(), payload)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(res)
	}

	fmt.Printf("%s Stored %s/%s\n", colorGreen("✓"), res.ResourceType, res.ID)
	return nil
}

func runResourcesGet(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	res, err := client.Resources.Get(context.Background(), args[0], args[1])
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(res)
	}

	fmt.Printf("%s\n", res.Raw)
	return nil
}

func runResourcesList(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	resources, err := client.Resources.ListByType(context.Background(), args[0])
	if err != nil {
		printError(err)
		return err
	}

	return renderResources(resources)
}

func runResourcesFilter(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	field, _ := cmd.Flags().GetString("field")
	value, _ := cmd.Flags().GetString("value")

	resources, err := client.Resources.Filter(context.Background(), args[0], field, value)
	if err != nil {
		printError(err)
		return err
	}

	return renderResources(resources)
}

func runResourcesDelete(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAdmin(store); err != nil {
		return err
	}

	result, err := client.Resources.Delete(context.Background(), args[0], args[1])
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Deleted %s/%s\n", colorGreen("✓"), args[0], args[1])
	return nil
}

func renderResources(resources []aarogyam.Resource) error {
	if jsonOut {
		return printJSON(map[string]interface{}{
			"resources": resources,
			"count":     len(resources),
		})
	}

	if len(resources) == 0 {
		fmt.Println("No resources found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "TYPE", "ID", "SIZE")
	for _, r := range resources {
		fmt.Fprintf(w, "%s\t%s\t%dB\n", r.ResourceType, truncate(r.ID, 24), len(r.Raw))
	}
	return w.Flush()
}
