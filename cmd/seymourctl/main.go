// Command seymourctl drives a Seymour-Screen Excellence masking controller
// from the command line, over a Global Caché IP2SL bridge or a local serial
// port.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/seymourav/go-seymour/client"
	"github.com/seymourav/go-seymour/discovery"
	"github.com/seymourav/go-seymour/logger"
	"github.com/seymourav/go-seymour/protocol"
	"github.com/seymourav/go-seymour/transport"
)

const (
	statusPollInterval = 500 * time.Millisecond
	statusWaitTimeout  = 60 * time.Second
)

const usageText = `Usage: seymourctl [global flags] <command> [args]

Commands:
  status                          show the controller status
  positions get                   show the motors' absolute positions
  positions halt [motor]          stop the given motor(s)
  positions home [motor]          move the given motor(s) to home
  positions in [motor] [flags]    move the given motor(s) inward
  positions out [motor] [flags]   move the given motor(s) outward
  preset apply <ratio>            move motors to a stored ratio preset
  preset list                     list the stored ratio presets
  preset store <ratio>            store current positions as a preset
  preset reset [ratio]            restore preset(s) to factory default
  system info                     show the static device descriptor
  system diagnostics <option>     show a diagnostic report (00, 10, 20)
  discover tcp [-interval d]      scan for IP2SL bridges on the network
  discover serial [-baud n]       list local serial ports
  calibrate [motor]               run a calibration cycle

Motors: top, bottom, left, right, vertical, horizontal, all (default all).

Global flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "seymourctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("seymourctl", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	var flagOpts options
	configPath := fs.String("config", defaultConfigPath(), "path to a TOML config file")
	fs.StringVar(&flagOpts.host, "host", "", "hostname or IP of the IP2SL bridge (env SEYMOUR_HOST)")
	fs.IntVar(&flagOpts.port, "port", 0, "TCP port of the IP2SL bridge (env SEYMOUR_PORT)")
	fs.StringVar(&flagOpts.serialPort, "serial", "", "serial device, overrides host/port (env SEYMOUR_SERIAL_PORT)")
	fs.IntVar(&flagOpts.baud, "baud", 0, "serial baud rate")
	fs.BoolVar(&flagOpts.verbose, "v", false, "enable verbose output")
	fs.BoolVar(&flagOpts.yes, "yes", false, "skip confirmation prompts")

	if err := fs.Parse(args); err != nil {
		return err
	}

	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })

	opts := defaultOptions()
	if err := applyFile(opts, *configPath, seen["config"]); err != nil {
		return err
	}
	if err := applyEnv(opts); err != nil {
		return err
	}
	applyFlags(opts, &flagOpts, seen)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch rest[0] {
	case "status":
		return cmdStatus(ctx, opts)
	case "positions":
		return cmdPositions(ctx, opts, rest[1:])
	case "preset":
		return cmdPreset(ctx, opts, rest[1:])
	case "system":
		return cmdSystem(ctx, opts, rest[1:])
	case "discover":
		return cmdDiscover(ctx, rest[1:])
	case "calibrate":
		return cmdCalibrate(ctx, opts, rest[1:])
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func applyFlags(opts, flagOpts *options, seen map[string]bool) {
	if seen["host"] {
		opts.host = flagOpts.host
	}
	if seen["port"] {
		opts.port = flagOpts.port
	}
	if seen["serial"] {
		opts.serialPort = flagOpts.serialPort
	}
	if seen["baud"] {
		opts.baud = flagOpts.baud
	}
	if seen["v"] {
		opts.verbose = flagOpts.verbose
	}
	opts.yes = flagOpts.yes
}

// newClient builds a connected-on-demand client from the merged options.
func newClient(ctx context.Context, opts *options) (*client.Client, error) {
	var tr transport.Transport
	if opts.serialPort != "" {
		tr = transport.NewSerialTransport(opts.serialPort, opts.baud)
	} else {
		tr = transport.NewTCPTransport(opts.host, opts.port)
	}

	level := logger.WarnLevel
	if opts.verbose {
		level = logger.DebugLevel
	}

	cfg, err := client.NewClientConfig(client.WithLogger(logger.NewSlog(level, false)))
	if err != nil {
		return nil, err
	}

	return client.NewClient(ctx, tr, cfg)
}

func cmdStatus(ctx context.Context, opts *options) error {
	c, err := newClient(ctx, opts)
	if err != nil {
		return err
	}
	defer closeClient(c)

	status, err := c.GetStatus(ctx)
	if err != nil {
		return err
	}

	renderStatus(status, c.Stats())

	return nil
}

func cmdPositions(ctx context.Context, opts *options, args []string) error {
	if len(args) == 0 {
		return errors.New("positions: missing subcommand (get, halt, home, in, out)")
	}

	sub, args := args[0], args[1:]

	switch sub {
	case "get":
		c, err := newClient(ctx, opts)
		if err != nil {
			return err
		}
		defer closeClient(c)

		positions, err := c.GetPositions(ctx)
		if err != nil {
			return err
		}

		renderPositions(positions)

		return nil

	case "halt":
		motor, err := motorArg(args)
		if err != nil {
			return err
		}

		return runAndSettle(ctx, opts, func(c *client.Client) error {
			return c.Halt(ctx, motor)
		})

	case "home":
		motor, err := motorArg(args)
		if err != nil {
			return err
		}

		return runAndSettle(ctx, opts, func(c *client.Client) error {
			return c.Home(ctx, motor)
		})

	case "in", "out":
		motor, movement, err := movementArgs(sub, args)
		if err != nil {
			return err
		}

		return runAndSettle(ctx, opts, func(c *client.Client) error {
			if sub == "in" {
				return c.MoveIn(ctx, motor, movement)
			}

			return c.MoveOut(ctx, motor, movement)
		})

	default:
		return fmt.Errorf("positions: unknown subcommand %q", sub)
	}
}

func cmdPreset(ctx context.Context, opts *options, args []string) error {
	if len(args) == 0 {
		return errors.New("preset: missing subcommand (apply, list, store, reset)")
	}

	sub, args := args[0], args[1:]

	switch sub {
	case "apply":
		ratio, err := ratioArg(args)
		if err != nil {
			return err
		}

		return runAndSettle(ctx, opts, func(c *client.Client) error {
			return c.MoveToRatio(ctx, ratio)
		})

	case "list":
		c, err := newClient(ctx, opts)
		if err != nil {
			return err
		}
		defer closeClient(c)

		settings, err := c.GetRatioSettings(ctx)
		if err != nil {
			return err
		}

		renderSettings(settings)

		return nil

	case "store":
		ratio, err := ratioArg(args)
		if err != nil {
			return err
		}

		c, err := newClient(ctx, opts)
		if err != nil {
			return err
		}
		defer closeClient(c)

		return c.UpdateRatio(ctx, ratio)

	case "reset":
		var ratio *protocol.Ratio
		target := "ALL PRESETS"

		if len(args) > 0 {
			r, err := ratioArg(args)
			if err != nil {
				return err
			}
			ratio = &r
			target = r.ID()
		}

		if !opts.yes && !confirm(fmt.Sprintf("Reset %s to factory default?", target)) {
			return errors.New("aborted")
		}

		c, err := newClient(ctx, opts)
		if err != nil {
			return err
		}
		defer closeClient(c)

		return c.ResetFactoryDefault(ctx, ratio)

	default:
		return fmt.Errorf("preset: unknown subcommand %q", sub)
	}
}

func cmdSystem(ctx context.Context, opts *options, args []string) error {
	if len(args) == 0 {
		return errors.New("system: missing subcommand (info, diagnostics)")
	}

	sub, args := args[0], args[1:]

	switch sub {
	case "info":
		c, err := newClient(ctx, opts)
		if err != nil {
			return err
		}
		defer closeClient(c)

		info, err := c.GetSystemInfo(ctx)
		if err != nil {
			return err
		}

		renderSystemInfo(info)

		return nil

	case "diagnostics":
		if len(args) != 1 {
			return errors.New("system diagnostics: missing option (00, 10, 20)")
		}

		option := protocol.DiagnosticOption(args[0])
		if !option.IsValid() {
			return fmt.Errorf("system diagnostics: invalid option %q", args[0])
		}

		c, err := newClient(ctx, opts)
		if err != nil {
			return err
		}
		defer closeClient(c)

		report, err := c.GetDiagnostics(ctx, option)
		if err != nil {
			return err
		}

		fmt.Println(report)

		return nil

	default:
		return fmt.Errorf("system: unknown subcommand %q", sub)
	}
}

func cmdDiscover(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("discover: missing subcommand (tcp, serial)")
	}

	sub, args := args[0], args[1:]

	switch sub {
	case "tcp":
		fs := flag.NewFlagSet("discover tcp", flag.ContinueOnError)
		interval := fs.Duration("interval", discovery.DefaultListenInterval, "how long to listen for beacons")
		if err := fs.Parse(args); err != nil {
			return err
		}

		if *interval <= 0 {
			return errors.New("discover tcp: interval must be positive")
		}

		endpoints, err := discovery.ListenEndpoints(ctx, *interval)
		if err != nil {
			return err
		}

		renderEndpoints(endpoints)

		return nil

	case "serial":
		fs := flag.NewFlagSet("discover serial", flag.ContinueOnError)
		baud := fs.Int("baud", transport.BaudRate, "baud rate recorded on each candidate")
		if err := fs.Parse(args); err != nil {
			return err
		}

		ports, err := discovery.ListSerialPorts(*baud)
		if err != nil {
			return err
		}

		renderSerialPorts(ports)

		return nil

	default:
		return fmt.Errorf("discover: unknown subcommand %q", sub)
	}
}

func cmdCalibrate(ctx context.Context, opts *options, args []string) error {
	motor, err := motorArg(args)
	if err != nil {
		return err
	}

	return runAndSettle(ctx, opts, func(c *client.Client) error {
		return c.Calibrate(ctx, motor)
	})
}

// runAndSettle executes one movement command and then polls the controller
// until it reports that the motors have stopped.
func runAndSettle(ctx context.Context, opts *options, op func(*client.Client) error) error {
	c, err := newClient(ctx, opts)
	if err != nil {
		return err
	}
	defer closeClient(c)

	if err := op(c); err != nil {
		return err
	}

	wctx, cancel := context.WithTimeout(ctx, statusWaitTimeout)
	defer cancel()

	status, err := c.WaitForStatus(wctx, statusPollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s waiting for the motors to stop", statusWaitTimeout)
		}

		return err
	}

	if opts.verbose {
		fmt.Printf("controller status: %s\n", status.Code)
	}

	return nil
}

func closeClient(c *client.Client) {
	if err := c.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "seymourctl: close: %v\n", err)
	}
}

// motorArg parses an optional positional motor name, defaulting to all
// motors.
func motorArg(args []string) (protocol.MotorID, error) {
	if len(args) == 0 {
		return protocol.MotorAll, nil
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument %q", args[1])
	}

	return parseMotor(args[0])
}

func parseMotor(name string) (protocol.MotorID, error) {
	switch strings.ToLower(name) {
	case "top", "t":
		return protocol.MotorTop, nil
	case "bottom", "b":
		return protocol.MotorBottom, nil
	case "left", "l":
		return protocol.MotorLeft, nil
	case "right", "r":
		return protocol.MotorRight, nil
	case "vertical", "v":
		return protocol.MotorVertical, nil
	case "horizontal", "h":
		return protocol.MotorHorizontal, nil
	case "all", "a":
		return protocol.MotorAll, nil
	default:
		return 0, fmt.Errorf("unknown motor %q", name)
	}
}

// movementArgs parses "[motor] [-move|-jog|-until-limit]" for positions
// in/out. Exactly one increment flag may be given; the default is a full
// step move.
func movementArgs(sub string, args []string) (protocol.MotorID, protocol.Movement, error) {
	fs := flag.NewFlagSet("positions "+sub, flag.ContinueOnError)
	move := fs.Bool("move", false, "move one full step")
	jog := fs.Bool("jog", false, "move one jog increment")
	untilLimit := fs.Bool("until-limit", false, "move until the limit switch")

	motor := protocol.MotorAll
	haveMotor := false

	// Accept the motor either before or after the increment flags.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		m, err := parseMotor(args[0])
		if err != nil {
			return 0, "", err
		}
		motor = m
		haveMotor = true
		args = args[1:]
	}

	if err := fs.Parse(args); err != nil {
		return 0, "", err
	}

	if fs.NArg() == 1 && !haveMotor {
		m, err := parseMotor(fs.Arg(0))
		if err != nil {
			return 0, "", err
		}
		motor = m
	} else if fs.NArg() > 0 {
		return 0, "", fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	var movement protocol.Movement

	switch {
	case *move && !*jog && !*untilLimit:
		movement = protocol.MoveStep
	case *jog && !*move && !*untilLimit:
		movement = protocol.MoveJog
	case *untilLimit && !*move && !*jog:
		movement = protocol.MoveUntilLimit
	case !*move && !*jog && !*untilLimit:
		movement = protocol.MoveStep
	default:
		return 0, "", errors.New("exactly one of -move, -jog, or -until-limit may be given")
	}

	return motor, movement, nil
}

func ratioArg(args []string) (protocol.Ratio, error) {
	if len(args) != 1 {
		return protocol.Ratio{}, errors.New("missing ratio argument (3 digits, e.g. 235 for 2.35:1)")
	}

	ratio, err := protocol.NewRatio(args[0])
	if err != nil {
		return protocol.Ratio{}, fmt.Errorf("invalid ratio %q", args[0])
	}

	return ratio, nil
}

// confirm prompts on stdout and reads a yes/no answer from stdin. Anything
// but an explicit yes declines.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
