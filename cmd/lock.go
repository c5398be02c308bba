package cmd

import (
	"github.com/spf13/cobra"
)

// lockCmd represents the lock command
var lockCmd = &cobra.Command{
	Use:   "lock [vin]",
	Short: "Lock the vehicle doors",
	Args:  cobra.MaximumNArgs(1),
	Run:   runLock,
}

// unlockCmd represents the unlock command
var unlockCmd = &cobra.Command{
	Use:   "unlock [vin]",
	Short: "Unlock the vehicle doors",
	Args:  cobra.MaximumNArgs(1),
	Run:   runUnlock,
}

func init() {
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(unlockCmd)
}

func runLock(cmd *cobra.Command, args []string) {
	conf, client := setup()
	if err := client.Lock(selectVehicle(client, conf, args).ID); err != nil {
		log.FATAL.Fatal(err)
	}
	log.INFO.Println("lock requested")
}

func runUnlock(cmd *cobra.Command, args []string) {
	conf, client := setup()
	if err := client.Unlock(selectVehicle(client, conf, args).ID); err != nil {
		log.FATAL.Fatal(err)
	}
	log.INFO.Println("unlock requested")
}
