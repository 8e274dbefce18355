package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/netisu/fitview"
)

func main() {
	flag.Parse()
	path := "model.glb"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	fmt.Println("--- STARTING DEBUG ---")
	root, err := fitview.LoadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	triangles := 0
	root.Walk(mgl64.Ident4(), func(n *fitview.Node, _ mgl64.Mat4) bool {
		if n.Mesh != nil {
			triangles += n.Mesh.Count()
		}
		return true
	})

	box := root.BoundingBox()
	fmt.Printf("--- MESH STATS ---\n")
	fmt.Printf("Nodes: %d\n", root.Count())
	fmt.Printf("Triangles: %d\n", triangles)
	printBox("Before", box)

	fit := fitview.Normalize(root)
	if !fit.Applied {
		fmt.Printf("Normalization skipped: degenerate extent %v\n", box.Size())
		return
	}
	after := root.BoundingBox()
	printBox("After", after)
	fmt.Printf("Scale: %.6f applied to %d nodes\n", fit.Scale, fit.Nodes)

	center := after.Center()
	if center.Len() > 1e-6 || after.MaxDim()-fitview.TargetSize > 1e-6 || fitview.TargetSize-after.MaxDim() > 1e-6 {
		fmt.Printf("Model is NOT normalized: center %v, max dim %.6f\n", center, after.MaxDim())
	} else {
		fmt.Printf("Model normalized!\n")
	}
}

func printBox(label string, box fitview.Box) {
	fmt.Printf("%s Min: %v\n", label, box.Min)
	fmt.Printf("%s Max: %v\n", label, box.Max)
	fmt.Printf("%s Center: %v\n", label, box.Center())
	fmt.Printf("%s Size: %v\n", label, box.Size())
}
