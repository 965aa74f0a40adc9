package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatchconsole/core/workflow"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Local assignment commands backed by the demo dataset",
}

var mockLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List demo incidents and units",
	RunE:  runMockLs,
}

var mockAssignCmd = &cobra.Command{
	Use:   "assign <incident-id> <unit-id>",
	Short: "Assign a unit to an incident locally",
	Args:  cobra.ExactArgs(2),
	RunE:  runMockAssign,
}

func init() {
	mockCmd.AddCommand(mockLsCmd)
	mockCmd.AddCommand(mockAssignCmd)
	rootCmd.AddCommand(mockCmd)
}

func seededAssigner() *workflow.LocalAssigner {
	incidents, units := workflow.SeedFixture()
	return workflow.NewLocalAssigner(incidents, units)
}

func runMockLs(cmd *cobra.Command, args []string) error {
	a := seededAssigner()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INCIDENT\tTYPE\tSEVERITY\tSTATUS\tASSIGNED")
	for _, inc := range a.Incidents() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", inc.ID, inc.Type, inc.Severity, inc.Status, inc.AssignedUnit)
	}
	fmt.Fprintln(w, "\nUNIT\tNAME\tTYPE\tSTATUS")
	for _, u := range a.Units() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Type, u.Status)
	}
	return w.Flush()
}

func runMockAssign(cmd *cobra.Command, args []string) error {
	a := seededAssigner()
	var incidentID int
	if _, err := fmt.Sscanf(args[0], "%d", &incidentID); err != nil {
		return fmt.Errorf("incident id %q: %w", args[0], err)
	}
	if err := a.Assign(incidentID, args[1]); err != nil {
		return err
	}
	for _, inc := range a.Incidents() {
		if inc.ID == incidentID {
			fmt.Printf("incident %d is now %s, assigned to %s\n", inc.ID, inc.Status, inc.AssignedUnit)
		}
	}
	return nil
}
