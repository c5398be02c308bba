package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// vehiclesCmd represents the vehicles command
var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List the account's enrolled vehicles",
	Run:   runVehicles,
}

func init() {
	rootCmd.AddCommand(vehiclesCmd)
}

func runVehicles(cmd *cobra.Command, args []string) {
	_, client := setup()

	vehicles, err := client.Vehicles()
	if err != nil {
		log.FATAL.Fatal(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"VIN", "Name", "Model", "Year", "EV"})

	for _, v := range vehicles {
		table.Append([]string{v.VIN, v.Name, v.Model, v.Year, strconv.FormatBool(v.EV)})
	}

	table.Render()
}
