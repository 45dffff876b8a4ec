package main

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/term"

	"github.com/diegok/pixbowl/internal/app"
	"github.com/diegok/pixbowl/internal/config"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if cfg.WriteTuningPath != "" {
		if err := config.WriteEffectiveTuning(cfg.TuningPath, cfg.WriteTuningPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote tuning to %s\n", cfg.WriteTuningPath)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: pixbowl needs an interactive terminal")
		os.Exit(1)
	}

	if cfg.IsServer {
		showServerInfo(cfg.Port, cfg.HTTPAddr)
	}

	application := app.NewApp(cfg)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  pixbowl --server [options]       Host a session and bowl")
	fmt.Fprintln(os.Stderr, "  pixbowl --join <address>         Watch a session")
	fmt.Fprintln(os.Stderr, "  pixbowl --join ws://<host>/ws    Watch over a websocket listener")
	fmt.Fprintln(os.Stderr, "  pixbowl --write-tuning <file>    Write the effective tuning and exit")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --port <port>       Server port (default: 5555)")
	fmt.Fprintln(os.Stderr, "  --name <name>       Player name")
	fmt.Fprintln(os.Stderr, "  --http <addr>       Websocket spectators, e.g. :8080 (server only)")
	fmt.Fprintln(os.Stderr, "  --tuning <file>     TOML physics tuning (server or --write-tuning)")
	fmt.Fprintln(os.Stderr, "  --seed <n>          Swing jitter seed (server only)")
	fmt.Fprintln(os.Stderr, "  --log <file>        Append logs to file")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  pixbowl --server --name Host --log bowl.log")
	fmt.Fprintln(os.Stderr, "  pixbowl --join 192.168.1.100 --name Watcher")
	fmt.Fprintln(os.Stderr, "  pixbowl --join localhost:5555")
}

func showServerInfo(port int, httpAddr string) {
	fmt.Printf("Starting PixBowl session on port %d\n", port)
	fmt.Println("Spectators can connect using:")
	fmt.Println("")

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		fmt.Printf("  pixbowl --join localhost:%d\n", port)
		return
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}

		ip := ipNet.IP
		if ip.IsLoopback() || ip.To4() == nil {
			continue
		}

		fmt.Printf("  pixbowl --join %s:%d\n", ip.String(), port)
	}

	fmt.Printf("  pixbowl --join localhost:%d  (same machine)\n", port)
	if httpAddr != "" {
		fmt.Printf("  websocket: ws://%s/ws\n", httpAddr)
	}
	fmt.Println("")
}
