package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	fastping "github.com/wisdomatom/go-fastping"
	"go.uber.org/zap"
)

var (
	root *cobra.Command
)

func init() {
	root = &cobra.Command{
		Use:           "fastping",
		Short:         "TCP/UDP/ICMP reachability and latency probe",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	addFlags(root.PersistentFlags())
}

func addFlags(fs *pflag.FlagSet) {
	defaults := fastping.DefaultFileConfig()
	fs.String("config", "", "yaml config file, flags set on the command line override it")
	fs.StringP("protocol", "p", "", "probe protocol, icmp/udp/tcp")
	fs.StringP("target", "t", "", "target ipv4 address")
	fs.Uint16("port", defaults.Port, "target port, ignored for icmp")
	fs.StringP("format", "f", defaults.Format, "output format, text/json")
	fs.Duration("timeout", defaults.Timeout, "timeout per probe")
	fs.Duration("interval", defaults.Interval, "interval between probes")
	fs.IntP("count", "c", defaults.Count, "stop after count probes, 0 runs until interrupted")
	fs.Bool("strict", defaults.StrictICMP, "only accept icmp echo replies carrying our identifier")
	fs.BoolP("verbose", "v", false, "debug logging")
}

// loadConfig reads the optional config file and applies explicitly set flags.
func loadConfig(fs *pflag.FlagSet) (*fastping.FileConfig, error) {
	cfg := fastping.DefaultFileConfig()
	if path, _ := fs.GetString("config"); path != "" {
		loaded, err := fastping.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "protocol":
			cfg.Protocol, err = fs.GetString(f.Name)
		case "target":
			cfg.Target, err = fs.GetString(f.Name)
		case "port":
			cfg.Port, err = fs.GetUint16(f.Name)
		case "format":
			cfg.Format, err = fs.GetString(f.Name)
		case "timeout":
			cfg.Timeout, err = fs.GetDuration(f.Name)
		case "interval":
			cfg.Interval, err = fs.GetDuration(f.Name)
		case "count":
			cfg.Count, err = fs.GetInt(f.Name)
		case "strict":
			cfg.StrictICMP, err = fs.GetBool(f.Name)
		}
	})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cmd *cobra.Command, args []string) error {
	fs := cmd.Flags()
	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}
	verbose, _ := fs.GetBool("verbose")
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("init logger error (%v)", err)
	}
	defer logger.Sync()

	req, err := cfg.Request()
	if err != nil {
		return err
	}
	format, err := fastping.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	engine := fastping.NewEngine(fastping.Config{
		StrictICMP: cfg.StrictICMP,
		Logger:     logger,
	})
	logger.Info("probing",
		zap.Stringer("protocol", req.Protocol),
		zap.String("target", req.Target),
		zap.Uint16("port", req.Port),
		zap.Duration("timeout", cfg.Timeout),
		zap.Duration("interval", cfg.Interval),
	)

	out := cmd.OutOrStdout()
	warnedPrivilege := false
	err = fastping.Watch(cmd.Context(), engine, req, cfg.Watch(), func(r fastping.Report) {
		if fastping.KindOf(r.Err) == fastping.KindPrivilege && !warnedPrivilege {
			warnedPrivilege = true
			logger.Warn("icmp probe needs a raw socket, run as root or grant CAP_NET_RAW", zap.Error(r.Err))
		}
		if err := fastping.NewRecord(r.Request, r.Result).Render(out, format); err != nil {
			logger.Error("render result", zap.Error(err))
		}
	})
	logger.Info("stopped")
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastping error (%v)\n", err)
		stop()
		os.Exit(1)
	}
}
