/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/opx"
	"dirpx.dev/opx/config"
	"dirpx.dev/opx/functional"
)

// app carries the state shared by subcommands once the root has run.
type app struct {
	cfgFile  string
	logLevel string

	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "opx",
		Short: "Operation dispatcher",
		Long: `opx routes named column operations to the backend serving the
column's device or kind. The bundled dense backend serves device "cpu".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./opx.yaml or /etc/opx/opx.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("default-device", "", "device targeted by factory calls")

	_ = a.v.BindPFlag("default_device", root.PersistentFlags().Lookup("default-device"))

	root.AddCommand(
		newBackendsCmd(),
		newOpsCmd(),
		newScaleCmd(),
		newCallCmd(),
		newFactoryCmd(),
	)
	return root
}

// setup loads configuration, builds the logger and republishes the
// canonical dispatcher with both.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	log, err := newLogger(a.logLevel)
	if err != nil {
		return err
	}
	a.log = log

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		log.Debug("config file loaded", zap.String("path", used))
	}

	opx.Rebuild(functional.WithConfig(cfg), functional.WithLogger(log))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build(zap.AddStacktrace(zap.ErrorLevel))
}
