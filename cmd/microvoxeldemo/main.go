// Command microvoxeldemo builds a small synthetic octree, runs the
// visibility calculator and the ray traverser over it, and writes a debug
// PNG of the resulting occlusion mask alongside a text summary.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/microvoxel"
	"github.com/gogpu/microvoxel/internal/democfg"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a demo config.toml (uses built-in defaults if unset)")
		output     = flag.String("output", "mask.png", "debug occlusion-mask PNG output path")
		pattern    = flag.String("pattern", "single", "synthetic scene: single|checker")
	)
	flag.Parse()

	cfg := democfg.Default()
	if *configPath != "" {
		loaded, err := democfg.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	volume, err := buildScene(*pattern)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	vc, err := microvoxel.NewVisibilityCalculator(
		microvoxel.WithMaskSize(cfg.MaskWidth, cfg.MaskHeight),
		microvoxel.WithMaxFootprintSize(cfg.MaxFootprintSize),
	)
	if err != nil {
		log.Fatalf("Failed to create visibility calculator: %v", err)
	}

	eye := microvoxel.V3(cfg.CameraEyeX, cfg.CameraEyeY, cfg.CameraEyeZ)
	target := microvoxel.V3(cfg.CameraTargetX, cfg.CameraTargetY, cfg.CameraTargetZ)
	aspect := float64(cfg.MaskWidth) / float64(cfg.MaskHeight)
	camera := microvoxel.NewStaticCamera(eye, target, microvoxel.V3(0, 1, 0),
		cfg.FovYDegrees*math.Pi/180, aspect, 0.1, 10000)

	glyphs := make([]microvoxel.Glyph, cfg.MaxGlyphs)
	n := vc.FindVisibleOctreeNodes(camera, volume, glyphs)
	log.Printf("Visibility: emitted %d glyphs (buffer capacity %d)\n", n, cfg.MaxGlyphs)
	for i := 0; i < n && i < 10; i++ {
		g := glyphs[i]
		fmt.Printf("  glyph[%d] centre=(%.1f,%.1f,%.1f) size=%.1f normal=(%.2f,%.2f,%.2f) material=%d\n",
			i, g.X, g.Y, g.Z, g.Size, g.A, g.B, g.C, g.D)
	}

	ray := microvoxel.Ray3{Origin: eye, Dir: target.Sub(eye).Normalize()}
	hit := microvoxel.RayParameter(volume, ray)
	if hit.Material != 0 {
		fmt.Printf("Ray from eye toward target hit material %d at distance %.3f, position=(%.3f,%.3f,%.3f)\n",
			hit.Material, hit.Distance, hit.Position.X, hit.Position.Y, hit.Position.Z)
	} else {
		fmt.Println("Ray from eye toward target missed (material 0)")
	}

	if err := writeMaskPNG(vc.Mask(), *output); err != nil {
		log.Fatalf("Failed to write mask PNG: %v", err)
	}
	log.Printf("Occlusion mask written to %s\n", *output)
}

// buildScene constructs a small SliceNodeStore-backed Volume for the demo.
// "single" fills one top-level octant (slot 7, +x+y+z, the one nearest the
// default camera) with solid material 7;
// "checker" alternates solid/empty across the 8 top-level children.
func buildScene(pattern string) (*microvoxel.Volume, error) {
	store := microvoxel.NewSliceNodeStore(16) // material ids 0..15

	switch pattern {
	case "single":
		root := store.AddNode(microvoxel.Node{0, 0, 0, 0, 0, 0, 0, 7})
		return microvoxel.NewVolume(root, store, 3)
	case "checker":
		root := store.AddNode(microvoxel.Node{1, 0, 2, 0, 3, 0, 4, 0})
		return microvoxel.NewVolume(root, store, 3)
	default:
		return nil, fmt.Errorf("unknown pattern %q", pattern)
	}
}

// writeMaskPNG renders an OcclusionMask's covered pixels as black-on-white
// and upscales the result 2x with nearest-neighbor sampling, the same
// visualization role gg's Pixmap.SavePNG plays for raster output.
func writeMaskPNG(mask *microvoxel.OcclusionMask, path string) error {
	w, h := mask.Width(), mask.Height()
	src := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.Gray{Y: 255}
			if mask.TestPixel(x, y) {
				c = color.Gray{Y: 0}
			}
			src.SetGray(x, y, c)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w*2, h*2))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
