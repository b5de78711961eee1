package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"geometric-transformations/internal/algorithms"
	"geometric-transformations/internal/geometry"
	"geometric-transformations/internal/imgio"
	"geometric-transformations/internal/metrics"
	"geometric-transformations/internal/transform"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Transform an image and write the result as PNG",
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringP("input", "i", "", "Input image (jpg, png, tiff, bmp)")
	applyCmd.Flags().StringP("output", "o", "", "Output PNG file (default: generated name in output.dir)")
	applyCmd.Flags().StringP("kind", "k", "", "Transformation: scale, rotate, affine, translate, projective")
	addTransformFlags(applyCmd)
	applyCmd.Flags().String("backend", "", "Override the configured backend: native or opencv")
	applyCmd.Flags().String("interpolation", "", "Override the warp interpolation: bilinear or nearest")
	applyCmd.Flags().String("border", "", "Override the border mode: constant or replicate")
	applyCmd.MarkFlagRequired("input")
	applyCmd.MarkFlagRequired("kind")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	kindStr, _ := cmd.Flags().GetString("kind")

	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Backend = v
	}
	if v, _ := cmd.Flags().GetString("interpolation"); v != "" {
		cfg.Interpolation = v
	}
	if v, _ := cmd.Flags().GetString("border"); v != "" {
		cfg.Border.Mode = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	kind, err := transform.ParseKind(kindStr)
	if err != nil {
		return err
	}

	loader := imgio.NewImageLoader(logger)
	img, err := loader.LoadImage(inputPath)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd, kind, img.Width, img.Height)
	if err != nil {
		return err
	}

	opts, err := cfg.TransformOptions()
	if err != nil {
		return err
	}
	engine, err := cfg.Factory()(img, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := transform.Apply(engine, req)
	if err != nil {
		return fmt.Errorf("%s: %w", kind.Label(), err)
	}
	elapsed := time.Since(start)

	if outputPath == "" {
		outputPath = filepath.Join(cfg.Output.Dir, imgio.OutputName(kind.Label(), inputPath, time.Now()))
	}
	if err := loader.SaveImage(result, outputPath); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"kind":       kind,
		"backend":    cfg.Backend,
		"elapsed_ms": elapsed.Milliseconds(),
	}).Debug("Transformation applied")

	fmt.Printf("%s: %s -> %s\n", kind.Label(), img, result)
	fmt.Printf("Output: %s\n", outputPath)

	printMetrics(metrics.NewEvaluator().EvaluateStep(img, result, string(kind)))
	return nil
}

func addTransformFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("fx", 1, "Horizontal scale factor")
	cmd.Flags().Float64("fy", 1, "Vertical scale factor")
	cmd.Flags().Float64("angle", 0, "Rotation angle in degrees, counter-clockwise")
	cmd.Flags().Float64("dx", 0, "Horizontal offset in pixels")
	cmd.Flags().Float64("dy", 0, "Vertical offset in pixels")
	cmd.Flags().String("src", "", "Source points \"x,y;x,y;...\" (default: corners/centre of the image)")
	cmd.Flags().String("dst", "", "Destination points \"x,y;x,y;...\"")
}

// buildRequest reads the flags of kind. Point kinds default their source
// points to the ones the desktop app uses.
func buildRequest(cmd *cobra.Command, kind transform.Kind, width, height int) (transform.Request, error) {
	flags := cmd.Flags()
	switch kind {
	case transform.KindScale:
		fx, _ := flags.GetFloat64("fx")
		fy, _ := flags.GetFloat64("fy")
		return transform.Scale{FX: fx, FY: fy}, nil
	case transform.KindRotate:
		angle, _ := flags.GetFloat64("angle")
		return transform.Rotate{Degrees: angle}, nil
	case transform.KindTranslate:
		dx, _ := flags.GetFloat64("dx")
		dy, _ := flags.GetFloat64("dy")
		return transform.Translate{DX: dx, DY: dy}, nil
	case transform.KindAffine:
		src := algorithms.AffineSource(width, height)
		dst := src
		if err := readPoints(cmd, src[:], dst[:]); err != nil {
			return nil, err
		}
		return transform.Affine{Src: src, Dst: dst}, nil
	case transform.KindProjective:
		src := algorithms.ProjectiveSource(width, height)
		dst := src
		if err := readPoints(cmd, src[:], dst[:]); err != nil {
			return nil, err
		}
		return transform.Projective{Src: src, Dst: dst}, nil
	}
	return nil, fmt.Errorf("%w: unknown transformation %q", transform.ErrInvalidParameter, kind)
}

// readPoints overwrites src and dst with the --src and --dst flags when
// they are set. Each must list exactly len(src) points.
func readPoints(cmd *cobra.Command, src, dst []geometry.Point) error {
	for _, f := range []struct {
		flag string
		pts  []geometry.Point
	}{{"src", src}, {"dst", dst}} {
		s, _ := cmd.Flags().GetString(f.flag)
		if s == "" {
			continue
		}
		pts, err := geometry.ParsePoints(s)
		if err != nil {
			return fmt.Errorf("%w: --%s: %v", transform.ErrInvalidParameter, f.flag, err)
		}
		if len(pts) != len(f.pts) {
			return fmt.Errorf("%w: --%s needs %d points, got %d", transform.ErrInvalidParameter, f.flag, len(f.pts), len(pts))
		}
		copy(f.pts, pts)
	}
	return nil
}
