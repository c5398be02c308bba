package cmd

import (
	"github.com/spf13/cobra"
)

// chargeCmd represents the charge command
var chargeCmd = &cobra.Command{
	Use:   "charge",
	Short: "Control EV charging",
}

var chargeStartCmd = &cobra.Command{
	Use:   "start [vin]",
	Short: "Start charging",
	Args:  cobra.MaximumNArgs(1),
	Run:   runChargeStart,
}

var chargeStopCmd = &cobra.Command{
	Use:   "stop [vin]",
	Short: "Stop charging",
	Args:  cobra.MaximumNArgs(1),
	Run:   runChargeStop,
}

var chargeLimitCmd = &cobra.Command{
	Use:   "limit [vin]",
	Short: "Set the AC and DC target state of charge",
	Args:  cobra.MaximumNArgs(1),
	Run:   runChargeLimit,
}

func init() {
	rootCmd.AddCommand(chargeCmd)
	chargeCmd.AddCommand(chargeStartCmd)
	chargeCmd.AddCommand(chargeStopCmd)
	chargeCmd.AddCommand(chargeLimitCmd)

	chargeLimitCmd.Flags().Int("ac", 80, "AC charge limit in percent")
	chargeLimitCmd.Flags().Int("dc", 80, "DC charge limit in percent")
}

func runChargeStart(cmd *cobra.Command, args []string) {
	conf, client := setup()
	if err := client.StartCharge(selectVehicle(client, conf, args).ID); err != nil {
		log.FATAL.Fatal(err)
	}
	log.INFO.Println("charge start requested")
}

func runChargeStop(cmd *cobra.Command, args []string) {
	conf, client := setup()
	if err := client.StopCharge(selectVehicle(client, conf, args).ID); err != nil {
		log.FATAL.Fatal(err)
	}
	log.INFO.Println("charge stop requested")
}

func runChargeLimit(cmd *cobra.Command, args []string) {
	conf, client := setup()

	ac, _ := cmd.Flags().GetInt("ac")
	dc, _ := cmd.Flags().GetInt("dc")

	if err := client.SetChargeLimits(selectVehicle(client, conf, args).ID, ac, dc); err != nil {
		log.FATAL.Fatal(err)
	}
	log.INFO.Printf("charge limits requested: ac %d%% dc %d%%", ac, dc)
}
