// lifewatch is a development tool that connects to a running lifegrid
// server's live feed and renders every board it receives to the terminal.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/lifegrid/internal/feed"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("lifewatch", flag.ContinueOnError)
	urlFlag := flagSet.String("url", "http://localhost:8080", "Base URL of the lifegrid server.")
	timeoutFlag := flagSet.Duration("connect-timeout", 10*time.Second, "How long to wait for the initial connection.")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	parsedURL, err := url.Parse(*urlFlag)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	opts := socket.DefaultOptions()
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(feed.Namespace, opts)
	defer io.Disconnect()

	connected := make(chan struct{}, 1)
	failed := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		connected <- struct{}{}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				failed <- err
				return
			}
		}
		failed <- fmt.Errorf("connection failed")
	})
	io.On(types.EventName(feed.EventBoard), func(data ...any) {
		if len(data) == 0 {
			return
		}
		fmt.Println(renderBoard(data[0]))
	})

	io.Connect()

	select {
	case <-connected:
		fmt.Printf("watching %s%s — ctrl-c to stop\n", baseURL, feed.Namespace)
	case err := <-failed:
		return fmt.Errorf("could not connect to %s: %w", baseURL, err)
	case <-time.After(*timeoutFlag):
		return fmt.Errorf("timed out connecting to %s", baseURL)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	return nil
}

// renderBoard turns a feed payload back into an ASCII grid. Unexpected
// shapes fall back to the raw JSON so the tool stays useful for debugging.
func renderBoard(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return rawJSON(payload)
	}
	rows, ok := obj["board"].([]any)
	if !ok {
		return rawJSON(payload)
	}

	var sb strings.Builder
	for _, rowAny := range rows {
		row, ok := rowAny.([]any)
		if !ok {
			return rawJSON(payload)
		}
		for _, cell := range row {
			if asFloat(cell) == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// asFloat tolerates the number representations different parsers produce.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

func rawJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
