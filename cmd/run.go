package cmd

import (
	"net/http"
	_ "net/http/pprof" // pprof handler
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uvolink/uvolink/core"
	"github.com/uvolink/uvolink/server"
	"github.com/uvolink/uvolink/server/public"
	"github.com/uvolink/uvolink/util"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:    "serve",
	Short:  "Serve the vehicle state over HTTP",
	PreRun: serveBindFlags,
	Run:    runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP(
		"uri", "u",
		"0.0.0.0:7070",
		"Listen address",
	)

	serveCmd.Flags().DurationP(
		"interval", "i",
		core.DefaultScanInterval,
		"Refresh interval",
	)

	serveCmd.Flags().Bool(
		"profile",
		false,
		"Expose pprof profiles",
	)
}

func serveBindFlags(cmd *cobra.Command, args []string) {
	for _, flag := range []string{"uri", "interval", "profile"} {
		if err := viper.BindPFlag(flag, cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) {
	conf, client := setup()
	log.INFO.Printf("uvolink %s (%s)", server.Version, server.Commit)

	if uri := viper.GetString("uri"); uri != "" {
		conf.URI = uri
	}
	if interval := viper.GetDuration("interval"); interval != 0 {
		conf.Interval = interval
	}

	vehicles, err := client.Vehicles()
	if err != nil {
		log.FATAL.Fatal(err)
	}

	// value cache
	cache := util.NewCache()
	cacheChan := make(chan util.Param)
	go cache.Run(cacheChan)

	// health tracks whether refreshes still produce values
	health := util.NewWaiter(2 * conf.Interval)

	valueChan := make(chan util.Param)
	go func() {
		for p := range valueChan {
			health.Update()
			cacheChan <- p
		}
	}()

	stopC := make(chan struct{})
	for _, v := range vehicles {
		coord := core.NewCoordinator(util.NewLogger("coord"), client, v)
		go coord.Run(conf.Interval, valueChan, stopC)
	}

	// create webserver
	httpd := server.NewHTTPd(conf.URI, health, cache)

	// pprof
	if viper.GetBool("profile") {
		httpd.Router().PathPrefix("/debug/").Handler(http.DefaultServeMux)
	}

	if url, err := public.Announce(conf.URI); err == nil {
		log.INFO.Println("listening at", url)
	}

	// catch signals
	go func() {
		signalC := make(chan os.Signal, 1)
		signal.Notify(signalC, os.Interrupt, syscall.SIGTERM)

		<-signalC    // wait for signal
		close(stopC) // signal refresh loops to end

		<-time.NewTimer(time.Second).C
		os.Exit(0)
	}()

	log.FATAL.Println(httpd.ListenAndServe())
}
