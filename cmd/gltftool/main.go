// gltftool is a CLI utility for inspecting and validating glTF 2.0 assets.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfkit/internal/config"
	"github.com/Faultbox/gltfkit/internal/logger"
	"github.com/Faultbox/gltfkit/pkg/glb"
	"github.com/Faultbox/gltfkit/pkg/gltf"
)

func main() {
	// Global flags come before the command: gltftool -debug info a.glb
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "validate", "check":
		cmdValidate(cfg, args)
	case "extract", "x":
		cmdExtract(args)
	case "bounds":
		cmdBounds(cfg, args)
	case "init-config":
		cmdInitConfig(cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gltftool - glTF 2.0 asset utility

Usage:
  gltftool [flags] <command> [arguments]

Commands:
  info <file>              Show asset information
  validate <file>          Validate document cross-references
  extract <file.glb> [dir] Extract JSON document and binary payload
  bounds <file>            Verify declared accessor min/max against data
  init-config              Write a default config file

Flags:
  -config <path>   Path to config file
  -debug           Enable debug logging
  -strict          Reject unknown JSON fields
  -no-validate     Skip document validation
  -no-external     Do not read external buffer/image files
  -check-bounds    Verify accessor bounds during validate

Examples:
  gltftool info model.glb
  gltftool -strict validate scene.gltf
  gltftool extract model.glb ./out`)
}

func loaderOptions(cfg *config.Config) gltf.Options {
	return gltf.Options{
		SkipValidation:         cfg.Loader.SkipValidation,
		DisallowUnknownFields:  cfg.Loader.StrictFields,
		SkipExternalReferences: !cfg.Loader.FollowExternal,
	}
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gltftool info <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	doc, bin, err := gltf.ParseWithOptions(data, loaderOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	container := "glTF (JSON)"
	if glb.IsBinary(data) {
		container = "GLB (binary)"
	}

	fmt.Printf("Asset:      %s\n", args[0])
	fmt.Printf("Container:  %s\n", container)
	fmt.Printf("Version:    %s\n", doc.Asset.Version)
	if doc.Asset.Generator != "" {
		fmt.Printf("Generator:  %s\n", doc.Asset.Generator)
	}
	if bin != nil {
		fmt.Printf("Payload:    %d bytes\n", len(bin))
	}
	fmt.Println()

	counts := []struct {
		name string
		n    int
	}{
		{"scenes", len(doc.Scenes)},
		{"nodes", len(doc.Nodes)},
		{"meshes", len(doc.Meshes)},
		{"materials", len(doc.Materials)},
		{"textures", len(doc.Textures)},
		{"images", len(doc.Images)},
		{"accessors", len(doc.Accessors)},
		{"bufferViews", len(doc.BufferViews)},
		{"buffers", len(doc.Buffers)},
		{"skins", len(doc.Skins)},
		{"animations", len(doc.Animations)},
		{"cameras", len(doc.Cameras)},
	}
	for _, c := range counts {
		if c.n > 0 {
			fmt.Printf("  %-12s %d\n", c.name, c.n)
		}
	}

	fmt.Println()
	fmt.Printf("Primitives: %d\n", doc.TotalPrimitiveCount())
	fmt.Printf("Vertices:   %d\n", doc.TotalVertexCount())

	if len(doc.ExtensionsUsed) > 0 {
		used := append([]string(nil), doc.ExtensionsUsed...)
		sort.Strings(used)
		fmt.Printf("Extensions: %s\n", strings.Join(used, ", "))
	}
	if len(doc.ExtensionsRequired) > 0 {
		required := append([]string(nil), doc.ExtensionsRequired...)
		sort.Strings(required)
		fmt.Printf("Required:   %s\n", strings.Join(required, ", "))
	}
}

func cmdValidate(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gltftool validate <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Decode without the validation pass so we can report every finding
	// instead of stopping at the first.
	opts := loaderOptions(cfg)
	opts.SkipValidation = true
	doc, _, err := gltf.ParseWithOptions(data, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := doc.Validate(); err != nil {
		var verrs gltf.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				fmt.Printf("  %s\n", ve.Error())
			}
			fmt.Fprintf(os.Stderr, "\n%d problem(s) found\n", len(verrs))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if cfg.Loader.CheckBounds {
		if err := verifyAllBounds(doc, data, args[0], cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("OK")
}

func verifyAllBounds(doc *gltf.Document, data []byte, path string, cfg *config.Config) error {
	_, res, err := gltf.Load(data, filepath.Dir(path), loaderOptions(cfg))
	if err != nil {
		return err
	}
	for i := range doc.Accessors {
		if err := gltf.VerifyBounds(doc, gltf.Index[gltf.Accessor](i), res.Resolver()); err != nil {
			return fmt.Errorf("accessors[%d]: %w", i, err)
		}
	}
	return nil
}

func cmdExtract(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gltftool extract <file.glb> [output_dir]")
		os.Exit(1)
	}

	outputDir := "."
	if len(args) > 1 {
		outputDir = args[1]
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !glb.IsBinary(data) {
		fmt.Fprintf(os.Stderr, "Not a GLB container: %s\n", args[0])
		os.Exit(1)
	}

	container, err := glb.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

	// Re-indent the JSON chunk for readability
	var pretty json.RawMessage = container.JSON
	if indented, err := json.MarshalIndent(pretty, "", "  "); err == nil {
		pretty = indented
	}

	jsonPath := filepath.Join(outputDir, base+".gltf")
	if err := os.WriteFile(jsonPath, pretty, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", jsonPath, err)
		os.Exit(1)
	}
	fmt.Printf("Extracted: %s (%d bytes)\n", jsonPath, len(pretty))

	if container.BIN != nil {
		binPath := filepath.Join(outputDir, base+".bin")
		if err := os.WriteFile(binPath, container.BIN, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", binPath, err)
			os.Exit(1)
		}
		fmt.Printf("Extracted: %s (%d bytes)\n", binPath, len(container.BIN))
	}
}

func cmdBounds(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gltftool bounds <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	doc, res, err := gltf.Load(data, filepath.Dir(args[0]), loaderOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	checked := 0
	for i := range doc.Accessors {
		accessor := &doc.Accessors[i]
		if accessor.Min == nil && accessor.Max == nil {
			continue
		}
		checked++
		if err := gltf.VerifyBounds(doc, gltf.Index[gltf.Accessor](i), res.Resolver()); err != nil {
			fmt.Printf("  accessors[%d]: %v\n", i, err)
			failed++
		}
	}

	fmt.Fprintf(os.Stderr, "\nChecked %d accessor(s), %d mismatch(es)\n", checked, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func cmdInitConfig(cfg *config.Config) {
	if err := cfg.Save(); err != nil {
		logger.Error("failed to write config", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("Wrote config to %s\n", config.DefaultPath())
}
