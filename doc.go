// Package microvoxel implements the rendering core of a sparse voxel
// octree engine: a visibility calculator that culls hidden octree nodes
// against a tiled occlusion mask and emits shaded-cube glyphs for a
// camera view, and a parametric octree ray traverser for first-hit
// ray/volume intersection.
//
// # Overview
//
// A Volume pairs a NodeStore with a root index and a side length of
// 2^HeightLog2. FindVisibleOctreeNodes walks a Volume front-to-back from
// a Camera, writing one Glyph per visible node into a caller-supplied
// buffer:
//
//	vc, err := microvoxel.NewVisibilityCalculator()
//	camera := microvoxel.NewStaticCamera(eye, target, up, fovY, aspect, near, far)
//	glyphs := make([]microvoxel.Glyph, 4096)
//	n := vc.FindVisibleOctreeNodes(camera, volume, glyphs)
//
// RayParameter finds the first occupied voxel along a ray independently
// of the visibility calculator, using the same Volume/NodeStore contract:
//
//	hit := microvoxel.RayParameter(volume, microvoxel.Ray3{Origin: eye, Dir: dir})
//	if hit.Material != 0 {
//		// hit.Position, hit.Distance, hit.Normal are populated
//	}
//
// # Non-goals
//
// This package does not shade, texture-sample, depth-buffer, anti-alias,
// reproject across frames, parallelize traversal, or offload to a GPU; it
// does not edit or stream octree nodes. Mesh voxelization, .vox export and
// color conversion are not part of this module. The only CLI parsing and
// image export live outside the core, in cmd/microvoxeldemo (with its
// TOML settings in internal/democfg), which writes a debug PNG of the
// occlusion mask.
package microvoxel
