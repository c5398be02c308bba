package cmd

import (
	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [vin]",
	Short: "Ask the vehicle to report fresh state to the cloud",
	Args:  cobra.MaximumNArgs(1),
	Run:   runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) {
	conf, client := setup()
	if err := client.RequestSync(selectVehicle(client, conf, args).ID); err != nil {
		log.FATAL.Fatal(err)
	}
	log.INFO.Println("sync requested")
}
