package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uvolink/uvolink/core"
	"github.com/uvolink/uvolink/util"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Periodically refresh all vehicles and print their state",
	Run:   runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) {
	conf, client := setup()

	vehicles, err := client.Vehicles()
	if err != nil {
		log.FATAL.Fatal(err)
	}

	valueChan := make(chan util.Param)
	done := make(chan struct{})
	defer close(done)

	for _, v := range vehicles {
		coord := core.NewCoordinator(util.NewLogger("coord"), client, v)
		go coord.Run(conf.Interval, valueChan, done)
	}

	for p := range valueChan {
		if p.Key != "state" {
			continue
		}

		b, err := json.Marshal(p.Val)
		if err != nil {
			log.ERROR.Printf("%s: %v", p.Vehicle, err)
			continue
		}
		fmt.Printf("%s %s\n", p.Vehicle, string(b))
	}
}
