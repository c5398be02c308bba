package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/core"
	"github.com/uvolink/uvolink/store"
	"github.com/uvolink/uvolink/util"
	"github.com/uvolink/uvolink/vehicle"
	"github.com/uvolink/uvolink/vehicle/bluelink"
	"github.com/uvolink/uvolink/vehicle/kia"
)

type config struct {
	URI        string
	Interval   time.Duration
	Cache      time.Duration
	Database   string
	Brand      string
	Username   string
	Password   string
	Pin        string
	Vehicle    string // default VIN when a command names none
	OtpTimeout time.Duration
	Levels     map[string]string
}

func (c *config) defaults() {
	if c.URI == "" {
		c.URI = "0.0.0.0:7070"
	}
	if c.Interval == 0 {
		c.Interval = core.DefaultScanInterval
	}
	if c.Cache == 0 {
		c.Cache = time.Minute
	}
}

func loadConfigFile(cfgFile string) (conf config, err error) {
	if cfgFile != "" {
		log.INFO.Println("using config file", cfgFile)
		if err = viper.UnmarshalExact(&conf); err != nil {
			err = fmt.Errorf("failed parsing config file %s: %w", cfgFile, err)
		}
	} else {
		err = errors.New("missing config file")
	}

	conf.defaults()
	return conf, err
}

// configureClient creates the brand client for the configured account. The
// returned persist func writes the session tokens back to the database so
// the next invocation skips the otp exchange.
func configureClient(conf config) (api.Client, func() error, error) {
	brand, err := api.BrandString(conf.Brand)
	if err != nil {
		return nil, nil, err
	}

	var db *store.Store
	if conf.Database != "" {
		if db, err = store.Open(conf.Database); err != nil {
			return nil, nil, fmt.Errorf("opening session store: %w", err)
		}
	}

	var stored store.Session
	if db != nil {
		if stored, _, err = db.Load(brand.String(), conf.Username); err != nil {
			return nil, nil, fmt.Errorf("loading session: %w", err)
		}
	}

	persist := func() error { return nil }

	client, err := registry.Get(brand, conf.Username, func() (api.Client, error) {
		clog := util.NewLogger(brand.String())

		switch brand {
		case api.BrandKia:
			identity := kia.NewIdentity(clog, kia.Config{
				Username:     conf.Username,
				Password:     conf.Password,
				DeviceID:     stored.DeviceID,
				RefreshToken: stored.RefreshToken,
				OtpTimeout:   conf.OtpTimeout,
			}, new(terminalPrompt))

			if db != nil {
				persist = func() error {
					return db.Save(store.Session{
						Brand:        brand.String(),
						Username:     conf.Username,
						DeviceID:     identity.DeviceID(),
						RefreshToken: identity.RefreshToken(),
					})
				}
			}

			return kia.New(clog, identity, conf.Cache), nil

		default:
			b := bluelink.Hyundai
			if brand == api.BrandGenesis {
				b = bluelink.Genesis
			}

			identity := bluelink.NewIdentity(clog, b, bluelink.Config{
				Username:    conf.Username,
				Password:    conf.Password,
				Pin:         conf.Pin,
				DeviceID:    stored.DeviceID,
				AccessToken: stored.AccessToken,
				Expiry:      stored.Expiry,
			})

			if db != nil {
				persist = func() error {
					token, expiry := identity.AccessToken()
					return db.Save(store.Session{
						Brand:       brand.String(),
						Username:    conf.Username,
						DeviceID:    identity.DeviceID(),
						AccessToken: token,
						Expiry:      expiry,
					})
				}
			}

			return bluelink.New(clog, identity, conf.Cache), nil
		}
	})

	return client, persist, err
}

// setup loads the config, logs in and persists the refreshed session
func setup() (config, api.Client) {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))

	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	util.LogLevel(viper.GetString("log"), conf.Levels)

	client, persist, err := configureClient(conf)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	if err := client.Login(); err != nil {
		log.FATAL.Fatal(err)
	}

	if err := persist(); err != nil {
		log.WARN.Printf("saving session: %v", err)
	}

	return conf, client
}

// selectVehicle resolves the vehicle a command addresses by vin. An empty
// vin selects the account's sole vehicle.
func selectVehicle(client api.Client, conf config, args []string) api.Vehicle {
	vin := conf.Vehicle
	if len(args) > 0 {
		vin = args[0]
	}

	v, err := vehicle.EnsureVehicle(vin, client.Vehicles, client.Vehicles)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	return v
}
