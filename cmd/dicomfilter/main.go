package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"dicomfilter/internal/models"
	"dicomfilter/pkg/config"
	"dicomfilter/pkg/dicommeta"
	"dicomfilter/pkg/imagefilter"
	"dicomfilter/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputFile := flag.String("input", "", "Input DICOM file")
	outputFile := flag.String("output", "filtered.png", "Output image filename (.png, .jpg)")
	filterList := flag.String("filters", "hu,window", "Comma-separated filter chain (hu, window, dilate, erode)")
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	preset := flag.String("preset", "", "Window preset name (overrides config)")
	autoWindow := flag.Bool("auto-window", false, "Estimate window level/width from pixel statistics")
	listFilters := flag.Bool("list", false, "List available filters and exit")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Parse()

	if *listFilters {
		fmt.Println("Available filters:")
		for _, kind := range imagefilter.Kinds() {
			filter, err := imagefilter.New(kind)
			if err != nil {
				log.Fatalf("Failed to construct filter %d: %v", int(kind), err)
			}
			fmt.Printf("  %-8s %-14s %s\n", kind, filter.DisplayName(), filter.DisplayDescription())
		}
		return
	}

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *preset != "" {
		cfg.Windowing.Preset = *preset
	}

	if cfg.Output.Verbose {
		fmt.Println("================================")
		fmt.Println("DICOM PIXEL FILTER CHAIN")
		fmt.Println("================================")
	}

	// Load the DICOM file
	meta, pixels, err := dicommeta.Load(*inputFile)
	if err != nil {
		log.Fatalf("Failed to load DICOM file: %v", err)
	}

	frame := &models.Frame{
		Pixels:   pixels,
		Meta:     meta,
		Filename: *inputFile,
	}

	rows, cols := frame.Pixels.Dims()
	if cfg.Output.Verbose {
		fmt.Printf("Loaded %s: %dx%d pixels\n", *inputFile, cols, rows)
	}

	// Apply the filter chain in order
	startTime := time.Now()
	steps, err := applyChain(frame, *filterList, cfg, *autoWindow)
	if err != nil {
		log.Fatalf("Filter chain failed: %v", err)
	}
	elapsed := time.Since(startTime)

	if cfg.Output.Verbose {
		fmt.Printf("\nApplied %d filters in %.3f seconds:\n", len(steps), elapsed.Seconds())
		for i, step := range steps {
			mode := "copy"
			if step.Inplace {
				mode = "in-place"
			}
			fmt.Printf("  %d. %s (%s)\n", i+1, step.Name, mode)
		}
	}

	// Render and save the result
	if err := visualization.NewRenderer(frame.Pixels).Save(*outputFile); err != nil {
		log.Fatalf("Failed to save output image: %v", err)
	}

	fmt.Printf("Filtered image saved to: %s\n", *outputFile)
}

// applyChain parses the comma-separated filter names and dispatches each
// filter in order, carrying the returned array forward.
func applyChain(frame *models.Frame, filterList string, cfg *config.Config, autoWindow bool) ([]models.ChainStep, error) {
	var steps []models.ChainStep

	for _, name := range strings.Split(filterList, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}

		kind, err := imagefilter.ParseKind(name)
		if err != nil {
			return nil, err
		}

		filter, err := imagefilter.New(kind)
		if err != nil {
			return nil, err
		}

		if err := configure(filter, frame, cfg, autoWindow); err != nil {
			return nil, err
		}

		out, err := filter.Dispatch(frame.Meta, frame.Pixels)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filter.DisplayName(), err)
		}
		frame.Pixels = out

		steps = append(steps, models.ChainStep{
			Kind:    kind,
			Name:    filter.DisplayName(),
			Inplace: filter.Inplace(),
		})
	}

	return steps, nil
}

// configure applies configuration to a freshly constructed filter.
func configure(filter imagefilter.Filter, frame *models.Frame, cfg *config.Config, autoWindow bool) error {
	switch f := filter.(type) {
	case *imagefilter.Windowing:
		if autoWindow {
			f.SetParams(imagefilter.EstimateWindow(frame.Pixels))
			return nil
		}
		params, err := cfg.WindowingParams()
		if err != nil {
			return err
		}
		f.SetParams(params)
	case *imagefilter.Morphology:
		f.SetParams(cfg.MorphologyParams())
	}
	return nil
}
