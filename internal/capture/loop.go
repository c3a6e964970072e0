package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/plate-vision/internal/imaging"
	"github.com/ironsheep/plate-vision/internal/plate"
	"github.com/ironsheep/plate-vision/internal/vision"
)

// DefaultQuitKey ends the loop when pressed in the display window.
const DefaultQuitKey = 'q'

// Options configures the live loop.
type Options struct {
	ShowGrid    bool
	GridSpacing int
	GridColor   color.RGBA
	ShowAxes    bool

	// QuitKey defaults to 'q'.
	QuitKey rune
	// KeyDelayMs is the key poll per frame, default 1.
	KeyDelayMs int
	// MaxFrames stops the loop after that many frames; 0 means no limit.
	MaxFrames int
}

// Summary describes the loop's final state.
type Summary struct {
	// Pose is the pose from the last processed frame, nil if that frame had
	// no marker.
	Pose       *vision.Pose
	Frames     int
	Detections int
	ReadFailed bool
}

// Plate classifies the marker of the last processed frame.
func (s *Summary) Plate() plate.Plate {
	if s.Pose == nil {
		return plate.FromMarker(nil)
	}
	return plate.New(s.Pose.MarkerID)
}

// Loop runs frames from a Source through an Extractor.
type Loop struct {
	source    Source
	display   Display
	extractor *vision.Extractor
	opts      Options
	log       *logrus.Entry
}

// NewLoop builds a loop. display may be nil to run headless.
func NewLoop(source Source, display Display, extractor *vision.Extractor, opts Options, logger *logrus.Logger) *Loop {
	if opts.QuitKey == 0 {
		opts.QuitKey = DefaultQuitKey
	}
	if opts.KeyDelayMs <= 0 {
		opts.KeyDelayMs = 1
	}
	if opts.GridColor == (color.RGBA{}) {
		opts.GridColor = imaging.GridColor
	}
	return &Loop{
		source:    source,
		display:   display,
		extractor: extractor,
		opts:      opts,
		log:       logger.WithField("session", uuid.NewString()),
	}
}

// Run processes frames until the quit key, a read failure, MaxFrames or ctx
// cancellation. Only detector and display failures are returned as errors.
func (l *Loop) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	l.log.Info("capture loop started")

	var prev *vision.Pose
	for {
		if err := ctx.Err(); err != nil {
			l.log.WithError(err).Info("capture loop cancelled")
			break
		}

		frame, err := l.source.Read()
		if err != nil {
			l.log.WithError(err).Warn("Failed to read frame")
			summary.ReadFailed = true
			break
		}

		pose, err := l.extractor.Extract(frame)
		if err != nil {
			return summary, fmt.Errorf("frame %d: %w", summary.Frames, err)
		}
		summary.Frames++
		summary.Pose = pose
		if pose != nil {
			summary.Detections++
		}
		l.logTransition(prev, pose)
		prev = pose

		if l.display != nil {
			if err := l.display.Show(l.render(frame, pose)); err != nil {
				return summary, fmt.Errorf("failed to show frame: %w", err)
			}
			if key := l.display.WaitKey(l.opts.KeyDelayMs); key >= 0 && rune(key&0xFF) == l.opts.QuitKey {
				l.log.Info("quit key pressed")
				break
			}
		}

		if l.opts.MaxFrames > 0 && summary.Frames >= l.opts.MaxFrames {
			break
		}
	}

	l.log.WithFields(logrus.Fields{
		"frames":     summary.Frames,
		"detections": summary.Detections,
	}).Info("capture loop finished")
	return summary, nil
}

// Close releases the source, display and detector.
func (l *Loop) Close() error {
	var errs []error
	if l.display != nil {
		errs = append(errs, l.display.Close())
	}
	errs = append(errs, l.source.Close(), l.extractor.Close())
	return errors.Join(errs...)
}

func (l *Loop) render(frame image.Image, pose *vision.Pose) image.Image {
	if !l.opts.ShowGrid && !(l.opts.ShowAxes && pose != nil) {
		return frame
	}
	canvas := imaging.ToRGBA(frame)
	if l.opts.ShowGrid {
		imaging.DrawGrid(canvas, l.opts.GridSpacing, l.opts.GridColor)
	}
	if l.opts.ShowAxes {
		imaging.DrawPoseAxes(canvas, pose)
	}
	return canvas
}

func (l *Loop) logTransition(prev, cur *vision.Pose) {
	switch {
	case prev == nil && cur != nil:
		l.log.WithFields(logrus.Fields{
			"marker_id": cur.MarkerID,
			"plate":     plate.New(cur.MarkerID).Type.String(),
		}).Info("marker acquired")
	case prev != nil && cur == nil:
		l.log.WithField("marker_id", prev.MarkerID).Info("marker lost")
	case cur != nil && prev.MarkerID != cur.MarkerID:
		l.log.WithFields(logrus.Fields{
			"from": prev.MarkerID,
			"to":   cur.MarkerID,
		}).Info("marker changed")
	}
	if cur != nil {
		l.log.WithFields(logrus.Fields{
			"marker_id": cur.MarkerID,
			"center":    cur.Center.String(),
			"angle":     cur.Angle,
		}).Debug("pose")
	}
}
