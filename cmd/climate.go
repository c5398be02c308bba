package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uvolink/uvolink/api"
)

// climateCmd represents the climate command
var climateCmd = &cobra.Command{
	Use:   "climate",
	Short: "Control remote climate",
}

var climateStartCmd = &cobra.Command{
	Use:   "start [vin]",
	Short: "Start remote climate",
	Args:  cobra.MaximumNArgs(1),
	Run:   runClimateStart,
}

var climateStopCmd = &cobra.Command{
	Use:   "stop [vin]",
	Short: "Stop remote climate",
	Args:  cobra.MaximumNArgs(1),
	Run:   runClimateStop,
}

func init() {
	rootCmd.AddCommand(climateCmd)
	climateCmd.AddCommand(climateStartCmd)
	climateCmd.AddCommand(climateStopCmd)

	climateStartCmd.Flags().Int("temp", 72, "Cabin temperature in °F")
	climateStartCmd.Flags().Bool("defrost", false, "Run the windshield defroster")
	climateStartCmd.Flags().Bool("heating", false, "Heat steering wheel, mirrors and rear window")
	for _, seat := range []string{"driver-seat", "passenger-seat", "rear-left-seat", "rear-right-seat"} {
		climateStartCmd.Flags().String(seat, "off", "Seat setting (off, cool-low..high, heat-low..high)")
	}
}

func seatFlag(cmd *cobra.Command, flag string) api.SeatState {
	s, _ := cmd.Flags().GetString(flag)

	mode, err := api.SeatModeString(s)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	return api.SeatState{Mode: mode}
}

func runClimateStart(cmd *cobra.Command, args []string) {
	conf, client := setup()

	temp, _ := cmd.Flags().GetInt("temp")
	defrost, _ := cmd.Flags().GetBool("defrost")
	heating, _ := cmd.Flags().GetBool("heating")

	spec := api.ClimateSpec{
		SetTemp:       temp,
		Climate:       true,
		Defrost:       defrost,
		Heating:       heating,
		DriverSeat:    seatFlag(cmd, "driver-seat"),
		PassengerSeat: seatFlag(cmd, "passenger-seat"),
		RearLeftSeat:  seatFlag(cmd, "rear-left-seat"),
		RearRightSeat: seatFlag(cmd, "rear-right-seat"),
	}

	if err := client.StartClimate(selectVehicle(client, conf, args).ID, spec); err != nil {
		log.FATAL.Fatal(err)
	}
	log.INFO.Println("climate start requested")
}

func runClimateStop(cmd *cobra.Command, args []string) {
	conf, client := setup()
	if err := client.StopClimate(selectVehicle(client, conf, args).ID); err != nil {
		log.FATAL.Fatal(err)
	}
	log.INFO.Println("climate stop requested")
}
