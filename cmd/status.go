package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [vin]",
	Short: "Show the vehicle state",
	Args:  cobra.MaximumNArgs(1),
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("jq", "", "Filter the output with a jq expression")
	statusCmd.Flags().Bool("wake", false, "Request a fresh report from the vehicle first")
}

func runStatus(cmd *cobra.Command, args []string) {
	conf, client := setup()
	id := selectVehicle(client, conf, args).ID

	if wake, _ := cmd.Flags().GetBool("wake"); wake {
		if err := client.RequestSync(id); err != nil {
			log.FATAL.Fatal(err)
		}
	}

	state, err := client.StatusLatest(id)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.FATAL.Fatal(err)
	}

	expr, _ := cmd.Flags().GetString("jq")
	if expr == "" {
		fmt.Println(string(b))
		return
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		log.FATAL.Fatalf("invalid jq expression: %v", err)
	}

	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		log.FATAL.Fatal(err)
	}

	iter := query.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			log.FATAL.Fatal(err)
		}

		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			log.FATAL.Fatal(err)
		}
		fmt.Println(string(out))
	}
}
