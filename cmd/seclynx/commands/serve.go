package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bl4ck0w1/seclynx/internal/mcpserver"
	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

func NewServeCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the Model Context Protocol server on stdio, exposing the platform's
applications, scans, findings, SCA, policy and sandbox APIs as tools.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(version)
		},
	}

	cmd.Flags().String("metrics-addr", "", "expose Prometheus metrics on this address (e.g. :9090)")
	_ = viper.BindPFlag("metrics.addr", cmd.Flags().Lookup("metrics-addr"))

	return cmd
}

func runServe(version string) error {
	metrics := utils.NewMetricsCollector(true)

	toolset, err := buildToolset(metrics)
	if err != nil {
		return err
	}

	// The metrics listener lives exactly as long as the MCP session; when
	// stdio closes, cancel drains it instead of leaking the goroutine.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if addr := viper.GetString("metrics.addr"); addr != "" {
		go func() {
			if err := metrics.StartServerWithContext(ctx, addr); err != nil {
				logrus.Warnf("Metrics server stopped: %v", err)
			}
		}()
		logrus.Infof("Metrics exposed on %s", addr)
	}

	logrus.Infof("Starting MCP server (version %s)", version)
	srv := mcpserver.New(version, toolset, logrus.StandardLogger())
	if err := srv.Serve(); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
