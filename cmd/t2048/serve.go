package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zenvertao/2048-game/internal/config"
	"github.com/zenvertao/2048-game/internal/input"
	"github.com/zenvertao/2048-game/internal/logging"
	"github.com/zenvertao/2048-game/internal/platform/tui"
	"github.com/zenvertao/2048-game/internal/remote"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over SSH and WebSocket",
	Long: `Start the game servers.

Each SSH connection gets its own silent game in the terminal. Each
WebSocket connection on /ws gets its own game driven by JSON messages:

  {"type":"move","direction":"left"}
  {"type":"swipe","dx":-42,"dy":3}
  {"type":"new_game"}
  {"type":"keep_playing"}
  {"type":"difficulty","difficulty":"hard"}

All sessions share the best score database. Pass an empty address to
disable a listener. The host key is generated on first start.

Examples:
  t2048 serve
  t2048 serve --ssh :2222 --ws ""
  t2048 serve --host-key ./host_key

Users can connect with:
  ssh localhost -p 2048`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "WebSocket server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "SSH idle timeout in minutes")
}

// listener is one server run by serve.
type listener interface {
	ListenAndServe(ctx context.Context) error
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, source := loadConfig(cmd)
	applyServeFlags(cmd, &cfg)

	logger, logCloser, err := logging.New(cfg.Log, logging.Options{Prefix: "t2048-serve", Stderr: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	logger.Info("starting", "config", source)

	difficulty, _ := cfg.GameDifficulty()
	th, _ := cfg.GameTheme()

	store, bestStore := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	var listeners []listener
	if cfg.Server.SSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:        cfg.Server.SSHAddr,
			HostKeyPath:    config.ExpandHome(cfg.Server.HostKey),
			IdleTimeout:    cfg.IdleTimeout(),
			Difficulty:     difficulty,
			Theme:          th,
			Timing:         cfg.Timing(),
			FrameInterval:  cfg.FrameInterval(),
			SwipeThreshold: cfg.Input.SwipeThreshold,
		}, bestStore, logger.WithPrefix("t2048-ssh"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating SSH server: %v\n", err)
			os.Exit(1)
		}
		listeners = append(listeners, sshServer)
		fmt.Printf("SSH: ssh localhost -p %s\n", port(cfg.Server.SSHAddr))
	}
	if cfg.Server.WSAddr != "" {
		listeners = append(listeners, remote.NewServer(remote.Config{
			Address:        cfg.Server.WSAddr,
			Difficulty:     difficulty,
			SwipeThreshold: input.DefaultSwipeThreshold,
			Seed:           flagSeed,
		}, bestStore, logger.WithPrefix("t2048-ws")))
		fmt.Printf("WebSocket: ws://localhost:%s/ws\n", port(cfg.Server.WSAddr))
	}
	if len(listeners) == 0 {
		fmt.Fprintln(os.Stderr, "Error: both listeners are disabled")
		os.Exit(1)
	}
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The first listener to fail stops the others.
	var wg sync.WaitGroup
	errs := make([]error, len(listeners))
	for i, l := range listeners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = l.ListenAndServe(ctx)
			stop()
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		logger.Error("server stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if flags.Changed("ws") {
		cfg.Server.WSAddr = flagWSAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeoutMin = flagIdleTimeout
	}
}

// port returns the port part of a listen address for the hints printed at
// startup.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
