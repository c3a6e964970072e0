package main

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/plate-vision/internal/capture"
	"github.com/ironsheep/plate-vision/internal/config"
	"github.com/ironsheep/plate-vision/internal/imaging"
	"github.com/ironsheep/plate-vision/internal/vision"
)

var detectOpts struct {
	out       string
	showGrid  bool
	showAxes  bool
	readLabel bool
}

var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Find the plate marker in a still image and print the summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	f := detectCmd.Flags()
	f.StringVarP(&detectOpts.out, "out", "o", "", "write an annotated PNG to this path")
	f.BoolVar(&detectOpts.showGrid, "grid", false, "draw a reference grid on the annotated image")
	f.BoolVar(&detectOpts.showAxes, "axes", true, "draw the marker axes on the annotated image")
	f.BoolVar(&detectOpts.readLabel, "read-label", false, "OCR the plate label next to the marker")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	img, err := imaging.LoadFile(args[0])
	if err != nil {
		return err
	}

	extractor, err := newExtractor()
	if err != nil {
		return err
	}
	defer extractor.Close()

	pose, err := extractor.Extract(img)
	if err != nil {
		return err
	}
	log.WithField("found", pose != nil).WithField("path", args[0]).Debug("still image processed")

	if err := capture.WriteSummary(cmd.OutOrStdout(), pose); err != nil {
		return err
	}

	if detectOpts.out != "" {
		if err := writeAnnotated(detectOpts.out, img, pose, overlayConfig(cmd, cfg)); err != nil {
			return err
		}
		log.WithField("path", detectOpts.out).Info("annotated image written")
	}

	if detectOpts.readLabel && pose != nil {
		printLabel(cmd, img, pose)
	}
	return nil
}

// overlayConfig applies the --grid and --axes flags over c when they were
// given explicitly.
func overlayConfig(cmd *cobra.Command, c config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("grid") {
		c.ShowGrid, _ = flags.GetBool("grid")
	}
	if flags.Changed("axes") {
		c.ShowAxes, _ = flags.GetBool("axes")
	}
	return c
}

// writeAnnotated draws the overlays enabled in c onto a copy of img and saves
// it as PNG.
func writeAnnotated(path string, img image.Image, pose *vision.Pose, c config.Config) error {
	canvas := imaging.ToRGBA(img)
	if c.ShowGrid {
		imaging.DrawGrid(canvas, c.GridSpacing, imaging.ParseColorOr(c.GridColor, imaging.GridColor))
	}
	if c.ShowAxes {
		imaging.DrawPoseAxes(canvas, pose)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := imaging.WritePNG(f, canvas); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
