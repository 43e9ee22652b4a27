package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/pin/pinreg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/rpi"

	"github.com/bartgrantham/gofm-rds/rds"
	"github.com/bartgrantham/gofm-rds/sink"
)

var (
	verboseFlag = false
	debugFlag   = false
	appVersion  = "dev"
)

func main() {
	app := cli.NewApp()
	app.Name = "gofm"
	app.Version = appVersion
	app.Usage = "decode RDS station name, radiotext and clock time"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
			EnvVars: []string{"GOFM_CONFIG"},
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "Enable verbose output",
			Destination: &verboseFlag,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Usage:       "Print debug messages",
			Destination: &debugFlag,
		},
		&cli.StringFlag{
			Name:  "sqlite",
			Usage: "Log decoded values to this SQLite database",
		},
		&cli.StringFlag{
			Name:  "redis",
			Usage: "Publish decoded values to this Redis server (host:port)",
		},
		&cli.StringFlag{
			Name:  "nats",
			Usage: "Publish decoded values to this NATS server URL",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:  "radio",
			Usage: "Receive from a Si4703 and show the station full screen",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:    "channel",
					Aliases: []string{"f"},
					Usage:   "FM channel in MHz",
				},
			},
			Action: radioAction,
		},
		{
			Name:      "replay",
			Usage:     "Decode a hex capture of RDS groups",
			ArgsUsage: "<capture.txt>",
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:  "rate",
					Usage: "Delay between groups, 0 to go as fast as possible",
				},
				&cli.BoolFlag{
					Name:    "groups",
					Aliases: []string{"g"},
					Usage:   "Log every group",
				},
			},
			Action: replayAction,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config and applies the flag overrides.
func loadConfig(c *cli.Context) (*Config, error) {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("sqlite") {
		cfg.SQLite.Path = c.String("sqlite")
	}
	if c.IsSet("redis") {
		cfg.Redis.Addr = c.String("redis")
	}
	if c.IsSet("nats") {
		cfg.NATS.URL = c.String("nats")
	}
	if c.IsSet("channel") {
		cfg.Radio.Channel = c.Float64("channel")
	}
	return cfg, cfg.Validate()
}

// openSinks builds the fanout with every configured sink.
func openSinks(ctx context.Context, cfg *Config, log logrus.FieldLogger) (*sink.Fanout, error) {
	fan := sink.NewFanout(ctx, log)

	if cfg.SQLite.Path != "" {
		db, err := sink.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			fan.Close()
			return nil, errors.Wrapf(err, "sqlite %s", cfg.SQLite.Path)
		}
		fan.Add(db)
	}
	if cfg.Redis.Addr != "" {
		r := sink.NewRedis(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}, cfg.Redis.Prefix)
		if err := r.Ping(ctx); err != nil {
			r.Close()
			fan.Close()
			return nil, err
		}
		fan.Add(r)
	}
	if cfg.NATS.URL != "" {
		n, err := sink.DialNATS(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			fan.Close()
			return nil, err
		}
		fan.Add(n)
	}

	log.WithField("session", fan.Session).Info("session started")
	return fan, nil
}

func logGroup(log logrus.FieldLogger, g rds.Group, rbds bool) {
	cs, _ := rds.CallSign(g.PI())
	log.WithFields(logrus.Fields{
		"pi":    fmt.Sprintf("%.4X", g.PI()),
		"call":  cs,
		"group": g.Code(),
		"type":  rds.GroupTypeName(g.Type(), g.VersionB()),
		"pty":   rds.ProgramTypeName(g.ProgramType(), rbds),
		"tp":    g.Traffic(),
	}).Info(g.String())
}

// decode runs src and feeds every group through d until src is done.
func decode(ctx context.Context, src Source, d *rds.Decoder, each func(rds.Group)) error {
	groups := make(chan rds.Group, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- src.Run(ctx, groups)
	}()

	for g := range groups {
		if each != nil {
			each(g)
		}
		d.Process(g)
	}
	return <-errc
}

func replayAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: gofm replay <capture.txt>")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	out, closer, err := logOutput(cfg.Log.File, os.Stderr)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	log, err := newLogger(cfg.Log.Level, verboseFlag, debugFlag, out)
	if err != nil {
		return err
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return errors.Wrap(err, "open capture")
	}
	defer f.Close()

	fan, err := openSinks(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer fan.Close()
	fan.Add(sink.NewConsole(os.Stdout))

	d := rds.New(rds.WithLogger(log))
	d.Attach(fan)

	rp := NewReplay(f, log)
	rp.Rate = c.Duration("rate")

	var each func(rds.Group)
	if c.Bool("groups") {
		each = func(g rds.Group) {
			logGroup(log, g, cfg.Display.RBDS)
		}
	}
	return decode(c.Context, rp, d, each)
}

// resetChip pulses the Si4703 reset line, which also selects 2-wire mode.
func resetChip() error {
	// GPIO23 == RPI16
	if err := rpi.P1_16.Out(gpio.Low); err != nil {
		return errors.Wrap(err, "reset low")
	}
	time.Sleep(100 * time.Millisecond)
	if err := rpi.P1_16.Out(gpio.High); err != nil {
		return errors.Wrap(err, "reset high")
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

func radioAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// the screen owns the terminal, so log to a file or nowhere
	out, closer, err := logOutput(cfg.Log.File, io.Discard)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	log, err := newLogger(cfg.Log.Level, verboseFlag, debugFlag, out)
	if err != nil {
		return err
	}

	if _, err = host.Init(); err != nil {
		return errors.Wrap(err, "couldn't initialize peripherals")
	}
	if cfg.Radio.Reset {
		if err := resetChip(); err != nil {
			return err
		}
	}

	bus, err := i2creg.Open(cfg.Radio.Bus)
	if err != nil {
		return errors.Wrap(err, "couldn't initialize i2c bus")
	}
	defer bus.Close()

	if p, ok := bus.(i2c.Pins); ok {
		_, sclPin := pinreg.Position(p.SCL())
		_, sdaPin := pinreg.Position(p.SDA())
		log.WithFields(logrus.Fields{
			"bus": bus.String(),
			"scl": fmt.Sprintf("%s : pin %d", p.SCL(), sclPin),
			"sda": fmt.Sprintf("%s : pin %d", p.SDA(), sdaPin),
		}).Info("using i2c")
	}

	s, err := NewSi4703(bus, cfg.Radio.Addr, log)
	if err != nil {
		return err
	}
	s.Rate = cfg.Radio.Poll
	if err := s.PowerUp(); err != nil {
		return err
	}
	if err := s.SetChannel(c.Context, cfg.Radio.Channel); err != nil {
		return err
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "couldn't open screen")
	}
	if err := scr.Init(); err != nil {
		return errors.Wrap(err, "couldn't init screen")
	}
	defer scr.Fini()

	disp := NewDisplay(scr,
		loadFont(cfg.Display.BigFont, log),
		loadFont(cfg.Display.MediumFont, log),
		cfg.Radio.Channel, cfg.Display.RBDS)

	fan, err := openSinks(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer fan.Close()
	fan.Add(disp)

	d := rds.New(rds.WithLogger(log))
	d.Attach(fan)

	disp.Draw()
	return runRadio(c.Context, scr, s, d, disp)
}

func runRadio(ctx context.Context, scr tcell.Screen, s *Si4703, d *rds.Decoder, disp *Display) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 1)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	groups := make(chan rds.Group, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- s.Run(ctx, groups)
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
					cancel()
				}
			case *tcell.EventResize:
				scr.Sync()
				disp.Draw()
			}
		case g, ok := <-groups:
			if !ok {
				return <-errc
			}
			disp.Status(g, s.RSSI(), s.Stereo())
			d.Process(g)
			disp.Draw()
		}
	}
}
