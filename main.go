// SPDX-License-Identifier: MIT OR Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deadmock/deadmock/internal/admin"
	"github.com/deadmock/deadmock/internal/config"
	"github.com/deadmock/deadmock/internal/logging"
	"github.com/deadmock/deadmock/internal/mappings"
	"github.com/deadmock/deadmock/internal/matcher"
	"github.com/deadmock/deadmock/internal/metrics"
	"github.com/deadmock/deadmock/internal/proxy"
	"github.com/deadmock/deadmock/internal/response"
	"github.com/deadmock/deadmock/internal/server"
)

// verbosity counts how many times -v was passed on the command line,
// matching the CLI's "occurrences of v" verbosity counter.
type verbosity int

func (v *verbosity) String() string { return fmt.Sprintf("%d", int(*v)) }
func (v *verbosity) Set(string) error {
	*v++
	return nil
}
func (v *verbosity) IsBoolFlag() bool { return true }

func main() {
	var (
		ip            string
		port          uint
		filesPath     string
		mappingsPath  string
		useProxy      bool
		proxyURL      string
		proxyUsername string
		proxyPassword string
		verbose       verbosity
		watch         bool
		adminAddr     string
	)

	flag.StringVar(&ip, "ip", "0.0.0.0", "The IP address to listen on.")
	flag.UintVar(&port, "port", 8080, "The port to listen on.")
	flag.StringVar(&filesPath, "files-path", "", "Directory whose files/ subdirectory holds response body files (default: current directory).")
	flag.StringVar(&mappingsPath, "mappings-path", "", "Directory whose mappings/ subdirectory holds mapping documents (default: current directory).")
	flag.BoolVar(&useProxy, "proxy", false, "Forward proxied responses through a forward proxy.")
	flag.StringVar(&proxyURL, "proxy-url", "", "The forward proxy URL, required when -proxy is set.")
	flag.StringVar(&proxyUsername, "proxy-username", "", "Forward proxy username, for Basic auth.")
	flag.StringVar(&proxyPassword, "proxy-password", "", "Forward proxy password, for Basic auth.")
	flag.Var(&verbose, "v", "Increase log verbosity; repeatable (0=Warning, 1=Info, 2=Debug, 3+=Trace).")
	flag.BoolVar(&watch, "watch", false, "Reload the mappings directory on change instead of loading it once.")
	flag.StringVar(&adminAddr, "admin-addr", ":9090", "Address for the /metrics, /ping, /ready admin server. Empty disables it.")
	flag.Parse()

	env := config.RuntimeEnv()
	_, log := logging.New(int(verbose), env)

	runtimeCfg := config.Runtime{IP: ip, Port: uint32(port)}
	if err := runtimeCfg.Validate(); err != nil {
		log.Error(err, "invalid runtime configuration")
		os.Exit(1)
	}

	proxyCfg := config.Proxy{UseProxy: useProxy}
	if proxyURL != "" {
		proxyCfg.ProxyURL = &proxyURL
	}
	if proxyUsername != "" {
		proxyCfg.ProxyUsername = &proxyUsername
	}
	if proxyPassword != "" {
		proxyCfg.ProxyPassword = &proxyPassword
	}
	if err := proxyCfg.Validate(); err != nil {
		log.Error(err, "invalid proxy configuration")
		os.Exit(1)
	}

	filesCfg := config.NewFiles(filesPath)
	bodyStore, err := response.NewBodyStore(filesCfg.Path)
	if err != nil {
		log.Error(err, "unable to index files root", "path", filesCfg.Path)
		os.Exit(1)
	}

	mappingsRoot := "mappings"
	if mappingsPath != "" {
		mappingsRoot = filepath.Join(mappingsPath, "mappings")
	}
	store, err := mappings.Load(mappingsRoot)
	if err != nil {
		log.Error(err, "unable to load mappings", "path", mappingsRoot)
		os.Exit(1)
	}
	log.Info("loaded mappings", "count", store.Len())
	metrics.MappingsLoaded.Set(float64(store.Len()))

	forwarder, err := proxy.NewForwarder(proxyCfg, log)
	if err != nil {
		log.Error(err, "unable to build proxy forwarder")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var lister matcher.EntryLister = store
	if watch {
		watched := mappings.NewWatched(store)
		lister = watched
		go func() {
			if err := mappings.Watch(ctx, mappingsRoot, watched, log); err != nil {
				log.Error(err, "mappings watcher exited")
			}
		}()
	}

	handler := &server.Handler{
		Store:     lister,
		Matcher:   matcher.New(matcher.All, log),
		BodyStore: bodyStore,
		Forwarder: forwarder,
		Log:       log,
	}

	if adminAddr != "" {
		go func() {
			if err := server.Run(ctx, adminAddr, admin.NewHandler(promhttp.Handler()), log); err != nil {
				log.Error(err, "admin server exited with error")
			}
		}()
	}

	if err := server.Run(ctx, runtimeCfg.Addr(), handler, log); err != nil {
		log.Error(err, "server exited with error")
		os.Exit(1)
	}
}
