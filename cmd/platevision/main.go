// Command platevision finds the ArUco marker on a labware plate, reports its
// position and rotation, and names the plate type the marker identifies.
package main

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	Execute()
}
