// Package servecmder provides the serve command for running the memory API
// server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/api"
	"github.com/mnemo-ai/mnemo/bridge"
	"github.com/mnemo-ai/mnemo/pkg/agent"
	"github.com/mnemo-ai/mnemo/pkg/config"
	"github.com/mnemo-ai/mnemo/pkg/events"
	"github.com/mnemo-ai/mnemo/pkg/events/hub"
	"github.com/mnemo-ai/mnemo/pkg/events/kafka"
	"github.com/mnemo-ai/mnemo/pkg/logger"
	"github.com/mnemo-ai/mnemo/pkg/memory"
	"github.com/mnemo-ai/mnemo/pkg/memory/filestore"
)

type serveCommander struct {
	listen        string
	memoryDir     string
	agentProvider string
	upstream      string
	timeoutMS     int
	eventsProv    string
	brokers       []string
	topic         string
	debug         bool
	logger        *zap.Logger
}

const serveLongDesc string = `Run the mnemo memory API server.

The server exposes the memory read API, the agent chat webhook, and the
observer WebSocket endpoint on one listen address. Settings resolve from
CLI flags, MNEMO_* environment variables, config.toml in the .mnemo/
directory, and built-in defaults, in that order.`

const serveShortDesc string = "Run the mnemo API server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			if err := cmder.resolveSettings(cmd, configDir); err != nil {
				return err
			}

			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for the API server to listen on")
	cmd.Flags().StringVarP(&cmder.memoryDir, "memory-dir", "m", "", "Directory holding per-user memory documents")
	cmd.Flags().StringVar(&cmder.agentProvider, "agent", "", "Agent backend (http, mock)")
	cmd.Flags().StringVarP(&cmder.upstream, "upstream", "u", "", "Upstream agent service URL")
	cmd.Flags().StringVar(&cmder.eventsProv, "events", "", "Event mirror backend (none, kafka)")

	return cmd
}

// resolveSettings layers flag values over viper's env/file/default chain.
// A flag the user actually set wins; otherwise the viper value applies.
func (c *serveCommander) resolveSettings(cmd *cobra.Command, configDir string) error {
	v, err := config.InitViper(configDir)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("listen") {
		c.listen = v.GetString("api.listen")
	}
	if !cmd.Flags().Changed("memory-dir") {
		c.memoryDir = v.GetString("memory.dir")
	}
	if !cmd.Flags().Changed("agent") {
		c.agentProvider = v.GetString("agent.provider")
	}
	if !cmd.Flags().Changed("upstream") {
		c.upstream = v.GetString("agent.upstream")
	}
	if !cmd.Flags().Changed("events") {
		c.eventsProv = v.GetString("events.provider")
	}

	c.timeoutMS = v.GetInt("agent.timeout_ms")
	c.brokers = v.GetStringSlice("events.brokers")
	c.topic = v.GetString("events.topic")

	return nil
}

func (c *serveCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	store := filestore.New(c.memoryDir, c.logger)
	defer store.Close()

	observerHub := hub.New(c.logger)

	publisher := c.newPublisher(observerHub)
	defer publisher.Close()

	memsvc := memory.NewService(store, publisher, c.logger)

	caller, err := c.newAgentCaller()
	if err != nil {
		return err
	}

	br := bridge.New(memsvc, caller, c.logger)

	server := api.NewServer(api.Config{ListenAddr: c.listen}, memsvc, br, observerHub, c.logger)

	c.logger.Info("starting mnemo",
		zap.String("listen", c.listen),
		zap.String("memory_dir", c.memoryDir),
		zap.String("agent", c.agentProvider),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}

// newPublisher composes the always-on observer hub with the optional Kafka
// mirror.
func (c *serveCommander) newPublisher(observerHub *hub.Hub) events.Publisher {
	if c.eventsProv != "kafka" {
		return observerHub
	}

	c.logger.Info("mirroring memory events to kafka",
		zap.Strings("brokers", c.brokers),
		zap.String("topic", c.topic),
	)

	mirror := kafka.NewPublisher(kafka.Config{
		Brokers: c.brokers,
		Topic:   c.topic,
	}, c.logger)

	return events.Multi(observerHub, mirror)
}

func (c *serveCommander) newAgentCaller() (agent.Caller, error) {
	switch c.agentProvider {
	case "mock":
		c.logger.Info("using mock agent")
		return &agent.MockCaller{Delay: time.Second}, nil

	case "http":
		c.logger.Info("using HTTP agent", zap.String("upstream", c.upstream))
		return agent.NewHTTPCaller(agent.HTTPConfig{
			Upstream: c.upstream,
			Timeout:  time.Duration(c.timeoutMS) * time.Millisecond,
		}, c.logger), nil

	default:
		return nil, fmt.Errorf("unknown agent provider: %q", c.agentProvider)
	}
}
