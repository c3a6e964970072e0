package main

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/plate-vision/internal/capture"
	"github.com/ironsheep/plate-vision/internal/imaging"
	"github.com/ironsheep/plate-vision/internal/ocr"
	"github.com/ironsheep/plate-vision/internal/vision"
)

var watchOpts struct {
	device      int
	showGrid    bool
	gridSpacing int
	showAxes    bool
	readLabel   bool
	maxFrames   int
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track the plate marker on a live camera feed until 'q' is pressed",
	RunE:  runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.IntVar(&watchOpts.device, "device", 0, "camera device index")
	f.BoolVar(&watchOpts.showGrid, "grid", false, "draw a reference grid")
	f.IntVar(&watchOpts.gridSpacing, "grid-spacing", 50, "grid spacing in pixels")
	f.BoolVar(&watchOpts.showAxes, "axes", true, "draw the marker axes")
	f.BoolVar(&watchOpts.readLabel, "read-label", false, "OCR the plate label from the last frame")
	f.IntVar(&watchOpts.maxFrames, "max-frames", 0, "stop after this many frames (0 = until 'q')")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("device") {
		cfg.Device = watchOpts.device
	}
	if flags.Changed("grid") {
		cfg.ShowGrid = watchOpts.showGrid
	}
	if flags.Changed("grid-spacing") {
		cfg.GridSpacing = watchOpts.gridSpacing
	}
	if flags.Changed("axes") {
		cfg.ShowAxes = watchOpts.showAxes
	}

	extractor, err := newExtractor()
	if err != nil {
		return err
	}
	camera, err := capture.OpenCamera(cfg.Device)
	if err != nil {
		extractor.Close()
		return err
	}
	window, err := capture.NewWindow(cfg.WindowTitle)
	if err != nil {
		extractor.Close()
		camera.Close()
		return err
	}

	var source capture.Source = camera
	var lastFrame *lastFrameSource
	if watchOpts.readLabel {
		lastFrame = &lastFrameSource{Source: camera}
		source = lastFrame
	}

	loop := capture.NewLoop(source, window, extractor, capture.Options{
		ShowGrid:    cfg.ShowGrid,
		GridSpacing: cfg.GridSpacing,
		GridColor:   imaging.ParseColorOr(cfg.GridColor, imaging.GridColor),
		ShowAxes:    cfg.ShowAxes,
		MaxFrames:   watchOpts.maxFrames,
	}, log)
	defer func() {
		if err := loop.Close(); err != nil {
			log.WithError(err).Warn("failed to release capture resources")
		}
	}()

	summary, err := loop.Run(cmd.Context())
	if summary != nil && summary.ReadFailed {
		fmt.Fprintln(cmd.OutOrStdout(), "Failed to read frame")
	}
	if err != nil {
		return err
	}

	if err := capture.WriteSummary(cmd.OutOrStdout(), summary.Pose); err != nil {
		return err
	}

	if lastFrame != nil && summary.Pose != nil && lastFrame.frame != nil {
		printLabel(cmd, lastFrame.frame, summary.Pose)
	}
	return nil
}

// lastFrameSource remembers the most recent frame for label OCR.
type lastFrameSource struct {
	capture.Source
	frame image.Image
}

func (s *lastFrameSource) Read() (image.Image, error) {
	frame, err := s.Source.Read()
	if err == nil {
		s.frame = frame
	}
	return frame, err
}

// printLabel reads the label around pose and prints it. OCR problems are
// reported but never fail the command.
func printLabel(cmd *cobra.Command, frame image.Image, pose *vision.Pose) {
	label, err := ocr.ReadLabel(frame, pose.LabelRegion(cfg.LabelScale), cfg.OCRLanguage)
	if err != nil {
		if errors.Is(err, ocr.ErrOCRUnavailable) {
			fmt.Fprintln(os.Stderr, "Label: OCR unavailable in this build")
			return
		}
		log.WithError(err).Warn("failed to read plate label")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Label: %s\n", label.Text)
}
