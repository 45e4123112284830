// gltftool is a CLI utility for inspecting and converting glTF 2.0 files.
package main

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfkit/internal/config"
	"github.com/Faultbox/gltfkit/internal/logger"
	"github.com/Faultbox/gltfkit/pkg/accessor"
	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// app carries the settings shared by every command.
type app struct {
	cfg *config.Config
	set gltf.ExtensionSet
	log *zap.Logger
}

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	commands := map[string]func(*app, []string) error{
		"info":    cmdInfo,
		"dump":    cmdDump,
		"split":   cmdSplit,
		"convert": cmdConvert,
		"attrs":   cmdAttrs,
		"images":  cmdImages,
	}

	switch command {
	case "help", "-h", "--help":
		printUsage()
		return
	}
	run, ok := commands[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(a, args); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		logger.Sync()
		os.Exit(1)
	}
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
		fileCfg.MaxBackups = cfg.Logging.MaxBackups
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, os.Stderr); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	set, err := cfg.Decode.Extensions()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, set: set, log: logger.Log}, nil
}

// readerOptions returns the PrimitiveReader options for the configured decode settings.
func (a *app) readerOptions() []accessor.Option {
	if !a.cfg.Decode.WarnOnClamp {
		return nil
	}
	return []accessor.Option{accessor.WithLogger(a.log.Named("accessor"))}
}

func printUsage() {
	fmt.Println(`gltftool - glTF 2.0 inspection and conversion utility

Usage:
  gltftool [flags] <command> [options]

Commands:
  info <file>...                          Show document summary
  dump <file>                             Print the parsed document as YAML
  split <file.glb> [out.json] [out.bin]   Write the JSON and binary chunks
  convert <file> [out.bin]                Write indices, positions and normals
  attrs <file>                            List primitive attributes
  images <file>                           List image formats and sizes

Flags:
  -config <path>     Config file (default ./gltftool.yaml)
  -debug             Enable debug logging
  -log-file <path>   Write JSON logs to a rotating file
  -out <dir>         Output directory for written files

Examples:
  gltftool info scene.gltf model.glb
  gltftool -out build split model.glb
  gltftool convert -mesh 2 model.glb mesh.bin`)
}
